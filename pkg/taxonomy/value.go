// SPDX-License-Identifier: MPL-2.0

package taxonomy

import (
	"fmt"
	"strconv"
	"strings"
)

// valueFriendlyIDSeparator splits a value friendly id into the friendly id of
// its primary attribute and the value's own slug ("color__red").
const valueFriendlyIDSeparator = "__"

// Value is one possible value of an attribute. A value may be shared by
// several attributes through extension, but belongs to exactly one primary
// attribute, named by the prefix of its friendly id.
type Value struct {
	ID         int
	Name       string
	FriendlyID string
	Handle     string
}

// PrimaryAttributeFriendlyID returns the friendly id prefix before "__", or ""
// when the friendly id has no prefix.
func (v *Value) PrimaryAttributeFriendlyID() string {
	prefix, _, found := strings.Cut(v.FriendlyID, valueFriendlyIDSeparator)
	if !found {
		return ""
	}
	return prefix
}

// GID returns the global identifier used in distribution output.
func (v *Value) GID() string { return ValueGID(v.ID) }

// Validate checks the value's own fields.
func (v *Value) Validate() error {
	var fieldErrs []error
	if v.ID <= 0 {
		fieldErrs = append(fieldErrs, fmt.Errorf("%w: id must be positive, got %d", ErrIDFormat, v.ID))
	}
	if strings.TrimSpace(v.Name) == "" {
		fieldErrs = append(fieldErrs, blank("name"))
	}
	if strings.TrimSpace(v.Handle) == "" {
		fieldErrs = append(fieldErrs, blank("handle"))
	}
	if strings.TrimSpace(v.FriendlyID) == "" {
		fieldErrs = append(fieldErrs, blank("friendly_id"))
	} else if v.PrimaryAttributeFriendlyID() == "" {
		fieldErrs = append(fieldErrs, fmt.Errorf("%w: friendly_id %q must look like <attribute>__<value>", ErrIDFormat, v.FriendlyID))
	}
	return newValidationError(kindValue, subjectOf(v), fieldErrs)
}

// String returns the friendly id.
func (v *Value) String() string { return v.FriendlyID }

func (v *Value) sortName() string { return v.Name }

func (v *Value) indexID() string {
	if v.ID == 0 {
		return ""
	}
	return strconv.Itoa(v.ID)
}

func subjectOf(v *Value) string {
	if v.FriendlyID != "" {
		return v.FriendlyID
	}
	return strconv.Itoa(v.ID)
}
