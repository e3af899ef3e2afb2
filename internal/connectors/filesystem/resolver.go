package filesystem

import "strings"

// ResolveWebURL converts a stored document URI into something the
// `document open` command can hand to the OS. file:// URIs become bare
// local paths, anything else passes through unchanged.
func ResolveWebURL(uri string, _ map[string]any) string {
	if strings.HasPrefix(uri, "file://") {
		return strings.TrimPrefix(uri, "file://")
	}
	return uri
}
