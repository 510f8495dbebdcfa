// SPDX-License-Identifier: MPL-2.0

package taxonomy

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/taxon/taxon/pkg/natsort"
)

const (
	// SortingNatural orders values by natural name order with "Other" last.
	SortingNatural Sorting = ""
	// SortingCustom keeps values in source order.
	SortingCustom Sorting = "custom"
)

type (
	// Sorting selects how an attribute orders its values.
	Sorting string

	// Attribute describes a product property such as "Color". A base attribute
	// owns its values. An extended attribute has no id of its own and takes its
	// values from its base attribute (which may itself be extended).
	Attribute struct {
		// ID is the numeric id of a base attribute; zero for extended attributes.
		ID          int
		Name        string
		Description string
		FriendlyID  string
		Handle      string
		Sorting     Sorting

		values []*Value
		base   *Attribute
	}
)

// Validate returns an error if the Sorting is not a known policy.
func (s Sorting) Validate() error {
	switch s {
	case SortingNatural, SortingCustom:
		return nil
	default:
		return fmt.Errorf("%w: %q (expected %q or empty)", ErrInvalidSorting, string(s), SortingCustom)
	}
}

// NewExtendedAttribute creates an attribute that reuses base's values.
func NewExtendedAttribute(base *Attribute, name, description, friendlyID, handle string) *Attribute {
	return &Attribute{
		Name:        name,
		Description: description,
		FriendlyID:  friendlyID,
		Handle:      handle,
		base:        base,
	}
}

// IsExtended reports whether the attribute derives its values from another.
func (a *Attribute) IsExtended() bool { return a.base != nil }

// Base returns the attribute a extends, or nil for a base attribute.
func (a *Attribute) Base() *Attribute { return a.base }

// BaseRoot follows the extension chain to the attribute that owns the values.
func (a *Attribute) BaseRoot() *Attribute {
	root := a
	for root.base != nil {
		root = root.base
	}
	return root
}

// GID returns the global identifier of the attribute that owns the values.
func (a *Attribute) GID() string { return AttributeGID(a.BaseRoot().ID) }

// AddValue appends v to a base attribute. Values added to an extended
// attribute are rejected because it does not own any.
func (a *Attribute) AddValue(v *Value) error {
	if a.base != nil {
		return fmt.Errorf("attribute %q extends %q and cannot own values", a.FriendlyID, a.base.FriendlyID)
	}
	if v == nil {
		return fmt.Errorf("attribute %q: value is nil", a.FriendlyID)
	}
	if !slices.Contains(a.values, v) {
		a.values = append(a.values, v)
	}
	return nil
}

// Values returns the values in source order, following the extension chain.
func (a *Attribute) Values() []*Value {
	return slices.Clone(a.BaseRoot().values)
}

// SortedValues returns the values ordered by the owning attribute's policy:
// source order for SortingCustom, natural name order with "Other" last otherwise.
func (a *Attribute) SortedValues(sorter *natsort.Sorter) ([]*Value, error) {
	owner := a.BaseRoot()
	if owner.Sorting == SortingCustom {
		return slices.Clone(owner.values), nil
	}
	return natsort.SortFunc(sorter, owner.values, (*Value).sortName, natsort.WithOtherLast())
}

// Validate checks the attribute's own fields. Cross-entity checks live in
// Taxonomy.Validate.
func (a *Attribute) Validate() error {
	var fieldErrs []error
	if strings.TrimSpace(a.Name) == "" {
		fieldErrs = append(fieldErrs, blank("name"))
	}
	if strings.TrimSpace(a.FriendlyID) == "" {
		fieldErrs = append(fieldErrs, blank("friendly_id"))
	}
	if strings.TrimSpace(a.Handle) == "" {
		fieldErrs = append(fieldErrs, blank("handle"))
	}
	if err := a.Sorting.Validate(); err != nil {
		fieldErrs = append(fieldErrs, err)
	}
	if a.base == nil {
		if a.ID <= 0 {
			fieldErrs = append(fieldErrs, fmt.Errorf("%w: id must be positive, got %d", ErrIDFormat, a.ID))
		}
		if len(a.values) == 0 {
			fieldErrs = append(fieldErrs, ErrMissingValues)
		}
	}
	return newValidationError(kindAttribute, a.FriendlyID, fieldErrs)
}

// String returns the friendly id.
func (a *Attribute) String() string { return a.FriendlyID }

func (a *Attribute) sortName() string { return a.Name }

// indexID is the key of a base attribute in the id index; extended
// attributes are not registered there.
func (a *Attribute) indexID() string {
	if a.base != nil || a.ID == 0 {
		return ""
	}
	return strconv.Itoa(a.ID)
}
