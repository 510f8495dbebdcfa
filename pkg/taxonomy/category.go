// SPDX-License-Identifier: MPL-2.0

package taxonomy

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/taxon/taxon/pkg/natsort"
)

const (
	kindCategory  = "category"
	kindAttribute = "attribute"
	kindValue     = "value"

	// FullNameSeparator joins ancestor names in FullName.
	FullNameSeparator = " > "
	// idSeparator joins the segments of a category id.
	idSeparator = "-"
)

var categoryIDRegex = regexp.MustCompile(`^[a-z]{2}(-\d+)*$`)

type (
	// Category is a node of a category tree. A category has at most one parent;
	// children and attributes are kept in natural order by name.
	//
	// Ancestors and descendants are derived from the parent links and memoized.
	// Any attachment marks the affected caches dirty and they are recomputed on
	// the next access.
	Category struct {
		id         string
		name       string
		parent     *Category
		children   []*Category
		attributes []*Attribute
		sorter     *natsort.Sorter

		ancestors     []*Category
		ancestorsOK   bool
		descendants   []*Category
		descendantsOK bool
	}

	// CategoryOption configures a Category at construction time.
	CategoryOption func(*Category) error
)

// NewCategory creates a category and applies opts in order. A category
// created without WithParent is a root until it is attached.
func NewCategory(id, name string, opts ...CategoryOption) (*Category, error) {
	c := &Category{id: id, name: name}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithSorter orders the children and attributes of the new category with
// sorter instead of natsort.Default. Pass it before WithChildren or
// WithAttributes so those attachments use it too.
func WithSorter(sorter *natsort.Sorter) CategoryOption {
	return func(c *Category) error {
		c.sorter = sorter
		return nil
	}
}

// WithParent attaches the new category below parent.
func WithParent(parent *Category) CategoryOption {
	return func(c *Category) error {
		if parent == nil {
			return nil
		}
		return parent.AddChild(c)
	}
}

// WithChildren attaches children below the new category.
func WithChildren(children ...*Category) CategoryOption {
	return func(c *Category) error {
		for _, child := range children {
			if err := c.AddChild(child); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithAttributes attaches attributes to the new category.
func WithAttributes(attributes ...*Attribute) CategoryOption {
	return func(c *Category) error {
		for _, attr := range attributes {
			if err := c.AddAttribute(attr); err != nil {
				return err
			}
		}
		return nil
	}
}

// ID returns the category id.
func (c *Category) ID() string { return c.id }

// Name returns the category name.
func (c *Category) Name() string { return c.name }

// Parent returns the parent category, or nil for a root.
func (c *Category) Parent() *Category { return c.parent }

// Children returns the direct children in natural name order.
func (c *Category) Children() []*Category { return slices.Clone(c.children) }

// Attributes returns the attached attributes in natural name order.
func (c *Category) Attributes() []*Attribute { return slices.Clone(c.attributes) }

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool { return c.parent == nil }

// IsLeaf reports whether the category has no children.
func (c *Category) IsLeaf() bool { return len(c.children) == 0 }

// Level returns the number of ancestors; roots are level 0.
func (c *Category) Level() int { return len(c.ancestorChain()) }

// GID returns the global identifier used in distribution output.
func (c *Category) GID() string { return CategoryGID(c.id) }

// String returns the category id.
func (c *Category) String() string { return c.id }

// Root returns the root of the tree containing c.
func (c *Category) Root() *Category {
	chain := c.ancestorChain()
	if len(chain) == 0 {
		return c
	}
	return chain[len(chain)-1]
}

// Ancestors returns the chain from the parent up to the root.
func (c *Category) Ancestors() []*Category {
	return slices.Clone(c.ancestorChain())
}

// Descendants returns every category below c in depth-first pre-order:
// each child is followed by its own descendants before the next child.
func (c *Category) Descendants() []*Category {
	return slices.Clone(c.descendantList())
}

// DescendantsAndSelf returns c followed by Descendants.
func (c *Category) DescendantsAndSelf() []*Category {
	desc := c.descendantList()
	out := make([]*Category, 0, len(desc)+1)
	out = append(out, c)
	return append(out, desc...)
}

// FullName returns the names from the root down to c joined by " > ".
func (c *Category) FullName() string {
	chain := c.ancestorChain()
	names := make([]string, 0, len(chain)+1)
	for i := len(chain) - 1; i >= 0; i-- {
		names = append(names, chain[i].name)
	}
	names = append(names, c.name)
	return strings.Join(names, FullNameSeparator)
}

// AddChild makes child a direct child of c. If child already has a different
// parent it is moved. AddChild fails without changing the tree when child is
// nil, is c, is the root of c's tree, or is one of c's ancestors.
func (c *Category) AddChild(child *Category) error {
	if child == nil {
		return ErrNilChild
	}
	if child == c {
		return &InvalidAttachmentError{Parent: c.id, Child: child.id, Reason: "a category cannot be its own child"}
	}
	if child == c.Root() {
		return &InvalidAttachmentError{Parent: c.id, Child: child.id, Reason: "the root of the tree cannot become its descendant"}
	}
	if slices.Contains(c.ancestorChain(), child) {
		return &InvalidAttachmentError{Parent: c.id, Child: child.id, Reason: "the child is already an ancestor"}
	}
	if child.parent == c {
		return nil
	}

	children, err := sortCategories(c.naturalSorter(), append(slices.Clone(c.children), child))
	if err != nil {
		return fmt.Errorf("sort children of %q: %w", c.id, err)
	}

	if old := child.parent; old != nil {
		old.children = slices.DeleteFunc(old.children, func(n *Category) bool { return n == child })
		old.markDescendantsDirty()
	}
	child.parent = c
	if child.sorter == nil {
		child.sorter = c.sorter
	}
	c.children = children
	c.markDescendantsDirty()
	child.markAncestorsDirty()
	return nil
}

// AddAttribute attaches attr to c. Attaching the same attribute twice is a no-op.
func (c *Category) AddAttribute(attr *Attribute) error {
	if attr == nil {
		return errors.New("attribute is nil")
	}
	if slices.Contains(c.attributes, attr) {
		return nil
	}
	attrs, err := natsort.SortFunc(c.naturalSorter(), append(slices.Clone(c.attributes), attr), (*Attribute).sortName)
	if err != nil {
		return fmt.Errorf("sort attributes of %q: %w", c.id, err)
	}
	c.attributes = attrs
	return nil
}

// Validate checks c and its whole subtree. Problems of one category are
// collected into a single ValidationError; errors of different categories are
// joined. Validate returns nil when the subtree is valid.
func (c *Category) Validate() error {
	var errs []error
	if err := c.validateSelf(); err != nil {
		errs = append(errs, err)
	}
	for _, child := range c.children {
		if err := child.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Category) validateSelf() error {
	var fieldErrs []error

	if strings.TrimSpace(c.name) == "" {
		fieldErrs = append(fieldErrs, blank("name"))
	}

	if !categoryIDRegex.MatchString(c.id) {
		fieldErrs = append(fieldErrs, fmt.Errorf("%w: %q must look like \"aa\" or \"aa-1-2\"", ErrIDFormat, c.id))
	}

	level := c.Level()
	if segments := len(strings.Split(c.id, idSeparator)); segments != level+1 {
		fieldErrs = append(fieldErrs, fmt.Errorf("%w: %q has %d segment(s) but is at level %d", ErrIDDepth, c.id, segments, level))
	}

	if c.parent != nil && !strings.HasPrefix(c.id, c.parent.id+idSeparator) {
		fieldErrs = append(fieldErrs, fmt.Errorf("%w: %q is not prefixed by %q", ErrIDPrefix, c.id, c.parent.id))
	}

	return newValidationError(kindCategory, c.id, fieldErrs)
}

func (c *Category) ancestorChain() []*Category {
	if !c.ancestorsOK {
		if c.parent == nil {
			c.ancestors = nil
		} else {
			parentChain := c.parent.ancestorChain()
			chain := make([]*Category, 0, len(parentChain)+1)
			chain = append(chain, c.parent)
			c.ancestors = append(chain, parentChain...)
		}
		c.ancestorsOK = true
	}
	return c.ancestors
}

func (c *Category) descendantList() []*Category {
	if !c.descendantsOK {
		var list []*Category
		for _, child := range c.children {
			list = append(list, child)
			list = append(list, child.descendantList()...)
		}
		c.descendants = list
		c.descendantsOK = true
	}
	return c.descendants
}

// markDescendantsDirty invalidates the descendant cache of c and of every
// ancestor, since all of them contain c's subtree.
func (c *Category) markDescendantsDirty() {
	for n := c; n != nil; n = n.parent {
		n.descendants = nil
		n.descendantsOK = false
	}
}

// markAncestorsDirty invalidates the ancestor cache of c's whole subtree.
// It walks children directly because the descendant cache may be stale.
func (c *Category) markAncestorsDirty() {
	c.ancestors = nil
	c.ancestorsOK = false
	for _, child := range c.children {
		child.markAncestorsDirty()
	}
}

// warm fills every cache of the subtree rooted at c.
func (c *Category) warm() {
	c.ancestorChain()
	c.descendantList()
	for _, child := range c.children {
		child.warm()
	}
}

// sortCategories orders categories by natural name order. Categories with the
// same name are ordered by id so the result does not depend on insertion order.
func sortCategories(sorter *natsort.Sorter, categories []*Category) ([]*Category, error) {
	slices.SortFunc(categories, func(a, b *Category) int { return strings.Compare(a.id, b.id) })
	return natsort.SortFunc(sorter, categories, (*Category).Name)
}

func (c *Category) naturalSorter() *natsort.Sorter {
	if c.sorter == nil {
		return natsort.Default()
	}
	return c.sorter
}
