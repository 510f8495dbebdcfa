// SPDX-License-Identifier: MPL-2.0

package loader

import (
	_ "embed"
)

// Definitions in schema.cue, one per source file kind.
const (
	valuesDefinition     = "#Values"
	attributesDefinition = "#Attributes"
	categoriesDefinition = "#Categories"
)

//go:embed schema.cue
var schemaBytes []byte

type (
	valueRecord struct {
		ID         int    `json:"id"`
		Name       string `json:"name"`
		FriendlyID string `json:"friendly_id"`
		Handle     string `json:"handle"`
	}

	valuesFile struct {
		Records []valueRecord `json:"records"`
	}

	baseAttributeRecord struct {
		ID          int      `json:"id"`
		Name        string   `json:"name"`
		Description string   `json:"description,omitempty"`
		FriendlyID  string   `json:"friendly_id"`
		Handle      string   `json:"handle"`
		Sorting     string   `json:"sorting,omitempty"`
		Values      []string `json:"values"`
	}

	extendedAttributeRecord struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		FriendlyID  string `json:"friendly_id"`
		Handle      string `json:"handle"`
		ValuesFrom  string `json:"values_from"`
	}

	attributesFile struct {
		BaseAttributes     []baseAttributeRecord     `json:"base_attributes"`
		ExtendedAttributes []extendedAttributeRecord `json:"extended_attributes,omitempty"`
	}

	categoryRecord struct {
		ID         string   `json:"id"`
		Name       string   `json:"name"`
		Children   []string `json:"children,omitempty"`
		Attributes []string `json:"attributes,omitempty"`
	}

	categoriesFile struct {
		Records []categoryRecord `json:"records"`
	}
)
