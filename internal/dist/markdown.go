// SPDX-License-Identifier: MPL-2.0

package dist

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/taxon/taxon/pkg/taxonomy"
)

// WriteVerticalMarkdown writes the category tree of vertical as a nested
// markdown list annotated with attribute names.
func WriteVerticalMarkdown(w io.Writer, tax *taxonomy.Taxonomy, vertical *taxonomy.Category) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n\n", vertical.Name())
	fmt.Fprintf(bw, "Version `%s` · prefix `%s` · %d categories\n\n", tax.Version, vertical.ID(), len(vertical.DescendantsAndSelf()))

	base := vertical.Level()
	for _, c := range vertical.DescendantsAndSelf() {
		indent := strings.Repeat("  ", c.Level()-base)
		fmt.Fprintf(bw, "%s- **%s** `%s`", indent, c.Name(), c.ID())
		if names := attributeNames(c); names != "" {
			fmt.Fprintf(bw, ": %s", names)
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// WriteCategoryMarkdown writes a detail page for one category: its path,
// children, and attributes with their values.
func WriteCategoryMarkdown(w io.Writer, tax *taxonomy.Taxonomy, c *taxonomy.Category) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n\n", c.Name())
	fmt.Fprintf(bw, "- **ID**: `%s`\n", c.ID())
	fmt.Fprintf(bw, "- **GID**: `%s`\n", c.GID())
	fmt.Fprintf(bw, "- **Level**: %d\n", c.Level())
	fmt.Fprintf(bw, "- **Path**: %s\n", c.FullName())

	if children := c.Children(); len(children) > 0 {
		bw.WriteString("\n## Children\n\n")
		for _, child := range children {
			fmt.Fprintf(bw, "- %s `%s`\n", child.Name(), child.ID())
		}
	}

	if attrs := c.Attributes(); len(attrs) > 0 {
		bw.WriteString("\n## Attributes\n\n| Attribute | Handle | Values |\n| --- | --- | --- |\n")
		for _, a := range attrs {
			values, err := a.SortedValues(tax.Sorter())
			if err != nil {
				return fmt.Errorf("sort values of %s: %w", a.FriendlyID, err)
			}
			names := make([]string, len(values))
			for i, v := range values {
				names[i] = v.Name
			}
			fmt.Fprintf(bw, "| %s | `%s` | %s |\n", a.Name, a.Handle, escapeCell(strings.Join(names, ", ")))
		}
	}
	return bw.Flush()
}

func attributeNames(c *taxonomy.Category) string {
	attrs := c.Attributes()
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
