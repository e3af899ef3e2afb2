package domain

import "time"

// Theme is an ADEME publication theme with its RSS feed.
type Theme struct {
	// Name is the French display name of the theme.
	Name string

	// FeedURL is the librairie.ademe.fr RSS feed for the theme.
	FeedURL string
}

// Themes lists the ADEME librairie publication feeds.
var Themes = []Theme{
	{Name: "Agriculture, alimentation, forêt, bioéconomie", FeedURL: "https://librairie.ademe.fr/rss/3516-thematique-agriculture-alimentation-foret-bioeconomie.xml"},
	{Name: "Air", FeedURL: "https://librairie.ademe.fr/rss/3145-thematique-air.xml"},
	{Name: "Bâtiment", FeedURL: "https://librairie.ademe.fr/rss/3153-thematique-batiment.xml"},
	{Name: "Changement climatique", FeedURL: "https://librairie.ademe.fr/rss/3147-thematique-changement-climatique.xml"},
	{Name: "Consommer autrement", FeedURL: "https://librairie.ademe.fr/rss/2906-thematique-consommer-autrement.xml"},
	{Name: "Économie circulaire et Déchets", FeedURL: "https://librairie.ademe.fr/rss/3426-thematique-economie-circulaire-et-dechets.xml"},
	{Name: "Énergies", FeedURL: "https://librairie.ademe.fr/rss/3149-thematique-energies.xml"},
	{Name: "Industrie et production durable", FeedURL: "https://librairie.ademe.fr/rss/3503-thematique-industrie-et-production-durable.xml"},
	{Name: "Institutionnel", FeedURL: "https://librairie.ademe.fr/rss/3157-thematique-institutionnel.xml"},
	{Name: "Mobilité et transports", FeedURL: "https://librairie.ademe.fr/rss/2901-thematique-mobilite-et-transports.xml"},
	{Name: "Recherche et innovation", FeedURL: "https://librairie.ademe.fr/rss/2930-thematique-recherche-et-innovation.xml"},
	{Name: "Société et politiques publiques", FeedURL: "https://librairie.ademe.fr/rss/3544-thematique-societe-et-politiques-publiques.xml"},
	{Name: "Urbanisme, territoires et sols", FeedURL: "https://librairie.ademe.fr/rss/3509-thematique-urbanisme-territoires-et-sols.xml"},
}

// ThemeByName returns the theme with the given name.
func ThemeByName(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Article is one publication entry from an ADEME feed.
type Article struct {
	// ID is the unique identifier for the article.
	ID string

	// Theme is the publication theme the article belongs to.
	Theme string

	// Title is the publication title.
	Title string

	// URL is the publication page on librairie.ademe.fr.
	URL string

	// Summary is the feed description, stripped of markup.
	Summary string

	// Published is the feed publication date.
	Published time.Time

	// FetchedAt is when the article was harvested.
	FetchedAt time.Time

	// Active marks articles still present in the current feed window.
	// Articles that drop out of a feed are kept but deactivated.
	Active bool
}

// PDFStatus tracks the lifecycle of a PDF attachment.
type PDFStatus string

const (
	// PDFDetected means a PDF link was found on the article page.
	PDFDetected PDFStatus = "detected"

	// PDFDownloaded means the PDF was fetched and validated.
	PDFDownloaded PDFStatus = "downloaded"

	// PDFFailed means download or validation failed.
	PDFFailed PDFStatus = "failed"
)

// PDFLink is a PDF attachment discovered on an article page.
type PDFLink struct {
	// ID is the unique identifier for the link.
	ID string

	// ArticleID links to the Article the PDF belongs to.
	ArticleID string

	// URL is the resolved absolute PDF URL.
	URL string

	// Filename is the local filename after download, empty before.
	Filename string

	// Size is the downloaded size in bytes, zero before download.
	Size int64

	// SHA256 is the hex digest of the downloaded content.
	SHA256 string

	// Status is the current lifecycle state.
	Status PDFStatus

	// HarvestedAt is when the link was first detected.
	HarvestedAt time.Time
}
