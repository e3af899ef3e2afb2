// Package normalisers converts raw connector output into plain-text
// documents. Each subpackage handles one family of formats (plaintext,
// html, markdown, pdf) and the Registry dispatches on MIME type and
// connector type.
package normalisers
