// SPDX-License-Identifier: MPL-2.0

// Package loader builds a taxonomy.Taxonomy from a directory of YAML or TOML
// source files:
//
//	data/
//	  values.yml               list of values
//	  attributes.yml           base_attributes and extended_attributes
//	  categories/<vertical>.yml  list of categories of one vertical
//
// Every file is checked against an embedded CUE schema before any entity is
// built. Record-level problems (duplicate keys, unknown references, cycles)
// are collected and returned joined so one run reports all of them.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/taxon/taxon/internal/dag"
	"github.com/taxon/taxon/pkg/cueutil"
	"github.com/taxon/taxon/pkg/natsort"
	"github.com/taxon/taxon/pkg/taxonomy"
)

const (
	fieldRecords            = "records"
	fieldBaseAttributes     = "base_attributes"
	fieldExtendedAttributes = "extended_attributes"
)

type (
	// Option configures a Loader.
	Option func(*Loader)

	// Loader reads a taxonomy source directory.
	Loader struct {
		dataDir     string
		version     string
		sorter      *natsort.Sorter
		logger      *log.Logger
		maxFileSize int64
	}

	// Sources are the decoded, schema-checked contents of a data directory.
	Sources struct {
		valuesPath     string
		attributesPath string
		values         []valueRecord
		attributes     *attributesFile
		verticals      []verticalSource
	}

	verticalSource struct {
		path    string
		records []categoryRecord
	}

	// builder turns records into entities, collecting every record error.
	builder struct {
		tax    *taxonomy.Taxonomy
		logger *log.Logger
		errs   []error
	}

	// linked pairs a registered category with the record that created it.
	linked struct {
		path     string
		index    int
		record   categoryRecord
		category *taxonomy.Category
	}
)

// New creates a Loader for dataDir.
func New(dataDir string, opts ...Option) *Loader {
	l := &Loader{
		dataDir:     dataDir,
		logger:      log.New(io.Discard),
		maxFileSize: cueutil.DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithVersion sets the version label of the built taxonomy.
func WithVersion(version string) Option {
	return func(l *Loader) { l.version = version }
}

// WithSorter sets the natural sorter shared with the built taxonomy.
func WithSorter(sorter *natsort.Sorter) Option {
	return func(l *Loader) { l.sorter = sorter }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMaxFileSize limits the size of each source file.
func WithMaxFileSize(size int64) Option {
	return func(l *Loader) { l.maxFileSize = size }
}

// DataDir returns the directory the loader reads.
func (l *Loader) DataDir() string { return l.dataDir }

// Load reads, builds, validates, and seals the taxonomy. The returned
// taxonomy may be read concurrently.
func (l *Loader) Load(ctx context.Context) (*taxonomy.Taxonomy, error) {
	src, err := l.Read(ctx)
	if err != nil {
		return nil, err
	}

	tax, err := l.Build(ctx, src)
	if err != nil {
		return nil, err
	}

	if err := tax.Validate(); err != nil {
		return nil, err
	}
	tax.Seal()

	l.logger.Info("taxonomy loaded",
		"version", tax.Version,
		"verticals", len(tax.Verticals()),
		"categories", tax.Categories.Size(),
		"attributes", tax.Attributes.Size(),
		"values", tax.Values.Size())
	return tax, nil
}

// Read locates and decodes every source file. Schema violations of all
// files are returned joined.
func (l *Loader) Read(ctx context.Context) (*Sources, error) {
	var (
		src  Sources
		errs []error
	)

	if path, err := findSource(l.dataDir, valuesSource); err != nil {
		errs = append(errs, err)
	} else if file, err := readSource[valuesFile](path, valuesDefinition, true, l.maxFileSize); err != nil {
		errs = append(errs, err)
	} else {
		src.valuesPath, src.values = path, file.Records
		l.logger.Debug("read source", "path", path, "records", len(file.Records))
	}

	if path, err := findSource(l.dataDir, attributesSource); err != nil {
		errs = append(errs, err)
	} else if file, err := readSource[attributesFile](path, attributesDefinition, false, l.maxFileSize); err != nil {
		errs = append(errs, err)
	} else {
		src.attributesPath, src.attributes = path, file
		l.logger.Debug("read source", "path", path,
			"base", len(file.BaseAttributes), "extended", len(file.ExtendedAttributes))
	}

	paths, err := categorySources(l.dataDir)
	if err != nil {
		errs = append(errs, err)
	}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		file, err := readSource[categoriesFile](path, categoriesDefinition, true, l.maxFileSize)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		src.verticals = append(src.verticals, verticalSource{path: path, records: file.Records})
		l.logger.Debug("read source", "path", path, "records", len(file.Records))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &src, nil
}

// Files returns the paths of every source file, values and attributes first.
func (s *Sources) Files() []string {
	files := []string{s.valuesPath, s.attributesPath}
	for _, v := range s.verticals {
		files = append(files, v.path)
	}
	return files
}

// Build creates every entity of src in dependency order: values, base
// attributes, extended attributes, then categories.
func (l *Loader) Build(ctx context.Context, src *Sources) (*taxonomy.Taxonomy, error) {
	b := &builder{tax: taxonomy.New(l.version, l.sorter), logger: l.logger}
	attrs := src.attributes
	if attrs == nil {
		attrs = &attributesFile{}
	}

	steps := []func(){
		func() { b.addValues(src.valuesPath, src.values) },
		func() { b.addBaseAttributes(src.attributesPath, attrs.BaseAttributes) },
		func() { b.addExtendedAttributes(src.attributesPath, attrs.ExtendedAttributes) },
		func() { b.addCategories(src.verticals) },
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		step()
	}

	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}
	return b.tax, nil
}

func (b *builder) fail(path, field string, index int, err error) {
	b.errs = append(b.errs, &RecordError{Path: path, Field: field, Index: index, Err: err})
}

func (b *builder) addValues(path string, records []valueRecord) {
	for i, r := range records {
		v := &taxonomy.Value{ID: r.ID, Name: r.Name, FriendlyID: r.FriendlyID, Handle: r.Handle}
		if err := b.tax.AddValue(v); err != nil {
			b.fail(path, fieldRecords, i, err)
		}
	}
}

func (b *builder) addBaseAttributes(path string, records []baseAttributeRecord) {
	for i, r := range records {
		attr := &taxonomy.Attribute{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			FriendlyID:  r.FriendlyID,
			Handle:      r.Handle,
			Sorting:     taxonomy.Sorting(r.Sorting),
		}

		ok := true
		for _, friendlyID := range r.Values {
			v, err := b.tax.Values.MustFind(taxonomy.FieldFriendlyID, friendlyID)
			if err == nil {
				err = attr.AddValue(v)
			}
			if err != nil {
				b.fail(path, fieldBaseAttributes, i, err)
				ok = false
			}
		}
		if !ok {
			continue
		}

		if err := b.tax.AddAttribute(attr); err != nil {
			b.fail(path, fieldBaseAttributes, i, err)
		}
	}
}

// addExtendedAttributes creates extended attributes after the attribute each
// one takes its values from, whatever the record order.
func (b *builder) addExtendedAttributes(path string, records []extendedAttributeRecord) {
	graph := dag.New()
	positions := make(map[string]int, len(records))
	for i, r := range records {
		if _, taken := positions[r.FriendlyID]; taken {
			b.fail(path, fieldExtendedAttributes, i, fmt.Errorf("extended attribute %q is declared more than once", r.FriendlyID))
			continue
		}
		positions[r.FriendlyID] = i
		graph.AddEdge(r.ValuesFrom, r.FriendlyID)
	}

	order, err := graph.TopologicalSort()
	if err != nil {
		b.errs = append(b.errs, &SourceError{Path: path, Err: fmt.Errorf("%s: %w", fieldExtendedAttributes, err)})
		return
	}

	for _, friendlyID := range order {
		i, ok := positions[friendlyID]
		if !ok {
			continue
		}
		r := records[i]
		base, err := b.tax.Attributes.MustFind(taxonomy.FieldFriendlyID, r.ValuesFrom)
		if err != nil {
			b.fail(path, fieldExtendedAttributes, i, err)
			continue
		}
		attr := taxonomy.NewExtendedAttribute(base, r.Name, r.Description, r.FriendlyID, r.Handle)
		if err := b.tax.AddAttribute(attr); err != nil {
			b.fail(path, fieldExtendedAttributes, i, err)
		}
	}
	b.logger.Debug("resolved extended attributes", "count", len(positions), "order", order)
}

// addCategories registers every category first so children can be listed
// before they are declared, then links children and attributes.
func (b *builder) addCategories(verticals []verticalSource) {
	var created []linked
	for _, vertical := range verticals {
		for i, r := range vertical.records {
			c, err := taxonomy.NewCategory(r.ID, r.Name)
			if err == nil {
				err = b.tax.AddCategory(c)
			}
			if err != nil {
				b.fail(vertical.path, fieldRecords, i, err)
				continue
			}
			created = append(created, linked{path: vertical.path, index: i, record: r, category: c})
		}
	}

	for _, entry := range created {
		for _, childID := range entry.record.Children {
			child, err := b.tax.Categories.MustFind(taxonomy.FieldID, childID)
			if err == nil {
				err = b.attach(entry.category, child)
			}
			if err != nil {
				b.fail(entry.path, fieldRecords, entry.index, err)
			}
		}
		for _, friendlyID := range entry.record.Attributes {
			attr, err := b.tax.Attributes.MustFind(taxonomy.FieldFriendlyID, friendlyID)
			if err == nil {
				err = entry.category.AddAttribute(attr)
			}
			if err != nil {
				b.fail(entry.path, fieldRecords, entry.index, err)
			}
		}
	}
}

func (b *builder) attach(parent, child *taxonomy.Category) error {
	if current := child.Parent(); current != nil && current != parent {
		return fmt.Errorf("%w: %q already belongs to %q", ErrMultipleParents, child.ID(), current.ID())
	}
	return parent.AddChild(child)
}
