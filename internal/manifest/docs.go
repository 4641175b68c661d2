package manifest

import (
	"fmt"
	"strings"

	"github.com/mosaicgen/mosaic/internal/codegen"
)

// DocSection pairs a documentation entry with the node that contributed it.
type DocSection struct {
	Entry  codegen.DocEntry
	NodeID string
}

// RenderDocsIndex concatenates documentation sections into a single index
// document, in the order given (which callers supply as commit order). Each
// section heading links to the standalone page written for that entry.
func RenderDocsIndex(sections []DocSection) string {
	var b strings.Builder
	b.WriteString("# Project Documentation\n")

	for _, s := range sections {
		b.WriteString("\n")
		fmt.Fprintf(&b, "## [%s](%s)\n\n", s.Entry.Title, s.Entry.Path)
		b.WriteString(strings.TrimRight(s.Entry.Content, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderDocPage renders one documentation entry as a standalone page.
func RenderDocPage(entry codegen.DocEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", entry.Title)
	b.WriteString(strings.TrimRight(entry.Content, "\n"))
	b.WriteString("\n")
	return b.String()
}
