// SPDX-License-Identifier: MPL-2.0

package dist

import (
	"bufio"
	"fmt"
	"io"

	"github.com/taxon/taxon/pkg/taxonomy"
)

type textLine struct {
	gid  string
	text string
}

// WriteCategoriesText writes one "<gid> : <full name>" line per category in
// depth-first order.
func WriteCategoriesText(w io.Writer, tax *taxonomy.Taxonomy) error {
	var lines []textLine
	for _, c := range tax.CategoriesInOrder() {
		lines = append(lines, textLine{gid: c.GID(), text: c.FullName()})
	}
	return writeText(w, "Categories", tax.Version, "{GID} : {Ancestor name} > ... > {Category name}", lines)
}

// WriteAttributesText writes one line per base attribute, ordered by id.
func WriteAttributesText(w io.Writer, tax *taxonomy.Taxonomy) error {
	var lines []textLine
	for _, a := range tax.BaseAttributes() {
		lines = append(lines, textLine{gid: a.GID(), text: a.Name})
	}
	return writeText(w, "Attributes", tax.Version, "{GID} : {Attribute name}", lines)
}

// WriteAttributeValuesText writes one line per value, ordered by id.
func WriteAttributeValuesText(w io.Writer, tax *taxonomy.Taxonomy) error {
	var lines []textLine
	for _, v := range tax.ValuesByID() {
		text := v.Name
		if owner, ok, _ := tax.Attributes.Find(taxonomy.FieldFriendlyID, v.PrimaryAttributeFriendlyID()); ok {
			text = fmt.Sprintf("%s [%s]", v.Name, owner.Name)
		}
		lines = append(lines, textLine{gid: v.GID(), text: text})
	}
	return writeText(w, "Attribute Values", tax.Version, "{GID} : {Value name} [{Attribute name}]", lines)
}

// writeText writes the comment header and the lines with gids padded to a
// common width.
func writeText(w io.Writer, title, version, format string, lines []textLine) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# Taxonomy: %s\n# Version: %s\n# Format: %s\n\n", title, version, format)

	width := 0
	for _, l := range lines {
		width = max(width, len(l.gid))
	}
	for _, l := range lines {
		fmt.Fprintf(bw, "%-*s : %s\n", width, l.gid, l.text)
	}
	return bw.Flush()
}
