// SPDX-License-Identifier: MPL-2.0

package taxonomy

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/taxon/taxon/pkg/index"
	"github.com/taxon/taxon/pkg/natsort"
)

// Field names accepted by the Taxonomy indices.
const (
	FieldID         = "id"
	FieldFriendlyID = "friendly_id"
	FieldHandle     = "handle"
)

// Taxonomy owns every entity of one build together with the indices used to
// look them up. Each build creates its own Taxonomy; nothing is shared between
// builds.
type Taxonomy struct {
	// Version labels distribution output.
	Version string

	// Categories is keyed by id.
	Categories *index.Index[*Category]
	// Attributes is keyed by friendly_id, handle, and (base attributes only) id.
	Attributes *index.Index[*Attribute]
	// Values is keyed by id, friendly_id, and handle.
	Values *index.Index[*Value]

	sorter *natsort.Sorter
}

// New creates an empty taxonomy. A nil sorter selects natsort.Default.
func New(version string, sorter *natsort.Sorter) *Taxonomy {
	if sorter == nil {
		sorter = natsort.Default()
	}
	return &Taxonomy{
		Version: version,
		Categories: index.New(kindCategory,
			index.Field[*Category]{Name: FieldID, Key: (*Category).ID},
		),
		Attributes: index.New(kindAttribute,
			index.Field[*Attribute]{Name: FieldFriendlyID, Key: func(a *Attribute) string { return a.FriendlyID }},
			index.Field[*Attribute]{Name: FieldHandle, Key: func(a *Attribute) string { return a.Handle }},
			index.Field[*Attribute]{Name: FieldID, Key: (*Attribute).indexID},
		),
		Values: index.New(kindValue,
			index.Field[*Value]{Name: FieldID, Key: (*Value).indexID},
			index.Field[*Value]{Name: FieldFriendlyID, Key: func(v *Value) string { return v.FriendlyID }},
			index.Field[*Value]{Name: FieldHandle, Key: func(v *Value) string { return v.Handle }},
		),
		sorter: sorter,
	}
}

// Sorter returns the natural sorter used for attribute values and for the
// children and attributes of registered categories.
func (t *Taxonomy) Sorter() *natsort.Sorter { return t.sorter }

// AddCategory registers c, rejecting it if its id is blank or already taken.
// A registered category sorts with the taxonomy's sorter.
func (t *Taxonomy) AddCategory(c *Category) error {
	if strings.TrimSpace(c.id) == "" {
		return newValidationError(kindCategory, c.name, []error{blank("id")})
	}
	if err := register(t.Categories, c); err != nil {
		return err
	}
	// Children and attributes attached from now on are ordered by this run's
	// sorter.
	c.sorter = t.sorter
	return nil
}

// AddAttribute registers a, rejecting it if its friendly id is blank or any
// of its keys is already taken.
func (t *Taxonomy) AddAttribute(a *Attribute) error {
	if strings.TrimSpace(a.FriendlyID) == "" {
		return newValidationError(kindAttribute, a.Name, []error{blank("friendly_id")})
	}
	return register(t.Attributes, a)
}

// AddValue registers v, rejecting it if its id is not positive or any of its
// keys is already taken.
func (t *Taxonomy) AddValue(v *Value) error {
	if v.ID <= 0 {
		return newValidationError(kindValue, subjectOf(v), []error{fmt.Errorf("%w: id must be positive, got %d", ErrIDFormat, v.ID)})
	}
	return register(t.Values, v)
}

func register[T comparable](idx *index.Index[T], entity T) error {
	if err := idx.CheckUnique(entity); err != nil {
		return err
	}
	idx.Add(entity)
	return nil
}

// Verticals returns the root categories ordered by id.
func (t *Taxonomy) Verticals() []*Category {
	var roots []*Category
	for _, c := range t.Categories.All() {
		if c.IsRoot() {
			roots = append(roots, c)
		}
	}
	slices.SortFunc(roots, func(a, b *Category) int { return strings.Compare(a.id, b.id) })
	return roots
}

// CategoriesInOrder returns every category, vertical by vertical, in
// depth-first order.
func (t *Taxonomy) CategoriesInOrder() []*Category {
	var out []*Category
	for _, v := range t.Verticals() {
		out = append(out, v.DescendantsAndSelf()...)
	}
	return out
}

// BaseAttributes returns the attributes that own values, ordered by id.
func (t *Taxonomy) BaseAttributes() []*Attribute {
	var out []*Attribute
	for _, a := range t.Attributes.All() {
		if !a.IsExtended() {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b *Attribute) int { return a.ID - b.ID })
	return out
}

// ExtendedAttributes returns the attributes whose values resolve to base,
// in registration order.
func (t *Taxonomy) ExtendedAttributes(base *Attribute) []*Attribute {
	var out []*Attribute
	for _, a := range t.Attributes.All() {
		if a.IsExtended() && a.BaseRoot() == base {
			out = append(out, a)
		}
	}
	return out
}

// ValuesByID returns every value ordered by id.
func (t *Taxonomy) ValuesByID() []*Value {
	values := t.Values.All()
	slices.SortFunc(values, func(a, b *Value) int { return a.ID - b.ID })
	return values
}

// Seal computes every memoized relationship. After Seal returns and as long
// as nothing is mutated, the taxonomy may be read concurrently.
func (t *Taxonomy) Seal() {
	for _, v := range t.Verticals() {
		v.warm()
	}
}

// Validate checks every category subtree, attribute, and value, and returns
// all problems joined. It returns nil when the taxonomy is valid.
func (t *Taxonomy) Validate() error {
	var errs []error

	for _, v := range t.Verticals() {
		if err := v.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	for _, a := range t.Attributes.All() {
		if err := a.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	for _, v := range t.Values.All() {
		var fieldErrs []error
		if err := v.Validate(); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				fieldErrs = append(fieldErrs, ve.FieldErrors...)
			}
		}
		if prefix := v.PrimaryAttributeFriendlyID(); prefix != "" {
			if _, ok, _ := t.Attributes.Find(FieldFriendlyID, prefix); !ok {
				fieldErrs = append(fieldErrs, fmt.Errorf("%w: %q", ErrUnknownPrimaryAttribute, prefix))
			}
		}
		if err := newValidationError(kindValue, subjectOf(v), fieldErrs); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
