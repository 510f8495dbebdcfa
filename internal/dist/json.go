// SPDX-License-Identifier: MPL-2.0

package dist

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/taxon/taxon/pkg/taxonomy"
)

type (
	categoriesDocument struct {
		Version   string         `json:"version"`
		Verticals []verticalJSON `json:"verticals"`
	}

	verticalJSON struct {
		Name       string         `json:"name"`
		Prefix     string         `json:"prefix"`
		Categories []categoryJSON `json:"categories"`
	}

	categoryJSON struct {
		ID         string                  `json:"id"`
		Level      int                     `json:"level"`
		Name       string                  `json:"name"`
		FullName   string                  `json:"full_name"`
		ParentID   *string                 `json:"parent_id"`
		Attributes []categoryAttributeJSON `json:"attributes"`
		Children   []categoryRefJSON       `json:"children"`
		Ancestors  []categoryRefJSON       `json:"ancestors"`
	}

	categoryRefJSON struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	categoryAttributeJSON struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Handle      string `json:"handle"`
		Description string `json:"description"`
		Extended    bool   `json:"extended"`
	}

	attributesDocument struct {
		Version    string          `json:"version"`
		Attributes []attributeJSON `json:"attributes"`
	}

	attributeJSON struct {
		ID                 string                  `json:"id"`
		Name               string                  `json:"name"`
		Handle             string                  `json:"handle"`
		Description        string                  `json:"description"`
		ExtendedAttributes []extendedAttributeJSON `json:"extended_attributes"`
		Values             []valueJSON             `json:"values"`
	}

	extendedAttributeJSON struct {
		Name   string `json:"name"`
		Handle string `json:"handle"`
	}

	valueJSON struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Handle string `json:"handle"`
	}
)

// WriteCategoriesJSON writes every vertical with its categories in
// depth-first order.
func WriteCategoriesJSON(w io.Writer, tax *taxonomy.Taxonomy) error {
	doc := categoriesDocument{Version: tax.Version, Verticals: []verticalJSON{}}
	for _, vertical := range tax.Verticals() {
		v := verticalJSON{Name: vertical.Name(), Prefix: vertical.ID()}
		for _, c := range vertical.DescendantsAndSelf() {
			v.Categories = append(v.Categories, newCategoryJSON(c))
		}
		doc.Verticals = append(doc.Verticals, v)
	}
	return encodeJSON(w, doc)
}

func newCategoryJSON(c *taxonomy.Category) categoryJSON {
	out := categoryJSON{
		ID:         c.GID(),
		Level:      c.Level(),
		Name:       c.Name(),
		FullName:   c.FullName(),
		Attributes: []categoryAttributeJSON{},
		Children:   []categoryRefJSON{},
		Ancestors:  []categoryRefJSON{},
	}
	if parent := c.Parent(); parent != nil {
		id := parent.GID()
		out.ParentID = &id
	}
	for _, a := range c.Attributes() {
		out.Attributes = append(out.Attributes, categoryAttributeJSON{
			ID:          a.GID(),
			Name:        a.Name,
			Handle:      a.Handle,
			Description: a.Description,
			Extended:    a.IsExtended(),
		})
	}
	for _, child := range c.Children() {
		out.Children = append(out.Children, categoryRefJSON{ID: child.GID(), Name: child.Name()})
	}
	for _, ancestor := range c.Ancestors() {
		out.Ancestors = append(out.Ancestors, categoryRefJSON{ID: ancestor.GID(), Name: ancestor.Name()})
	}
	return out
}

// WriteAttributesJSON writes every base attribute by id with its extended
// attributes and its values in display order.
func WriteAttributesJSON(w io.Writer, tax *taxonomy.Taxonomy) error {
	doc := attributesDocument{Version: tax.Version, Attributes: []attributeJSON{}}
	for _, a := range tax.BaseAttributes() {
		values, err := a.SortedValues(tax.Sorter())
		if err != nil {
			return fmt.Errorf("sort values of %s: %w", a.FriendlyID, err)
		}

		out := attributeJSON{
			ID:                 a.GID(),
			Name:               a.Name,
			Handle:             a.Handle,
			Description:        a.Description,
			ExtendedAttributes: []extendedAttributeJSON{},
			Values:             make([]valueJSON, 0, len(values)),
		}
		for _, ext := range tax.ExtendedAttributes(a) {
			out.ExtendedAttributes = append(out.ExtendedAttributes, extendedAttributeJSON{Name: ext.Name, Handle: ext.Handle})
		}
		for _, v := range values {
			out.Values = append(out.Values, valueJSON{ID: v.GID(), Name: v.Name, Handle: v.Handle})
		}
		doc.Attributes = append(doc.Attributes, out)
	}
	return encodeJSON(w, doc)
}

func encodeJSON(w io.Writer, doc any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}
