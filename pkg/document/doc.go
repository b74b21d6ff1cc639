// Package document provides the ordered element tree exchanged between pages,
// the form lifecycle and the renderer. Documents serialize to XML.
package document
