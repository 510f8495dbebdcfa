// SPDX-License-Identifier: MPL-2.0

// Package dist writes distribution files for a built taxonomy: JSON for
// programs, plain text for diffs and grepping, and markdown for people.
//
// The taxonomy is sealed before any file is written and only read afterwards,
// so the serializers run concurrently.
package dist

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/taxon/taxon/pkg/taxonomy"
)

// Output file names relative to the output directory.
const (
	CategoriesJSONFile      = "categories.json"
	AttributesJSONFile      = "attributes.json"
	CategoriesTextFile      = "categories.txt"
	AttributesTextFile      = "attributes.txt"
	AttributeValuesTextFile = "attribute_values.txt"
	DocsDir                 = "docs"

	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

type (
	// Writer writes distribution files under an output directory.
	Writer struct {
		outDir string
		logger *log.Logger
	}

	// output is one file to write and the serializer producing it.
	output struct {
		path  string
		write func(io.Writer) error
	}
)

// NewWriter creates a Writer for outDir. A nil logger discards output.
func NewWriter(outDir string, logger *log.Logger) *Writer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Writer{outDir: outDir, logger: logger}
}

// WriteAll seals tax and writes every file of the requested formats
// concurrently. It returns the written paths in lexical order. Each file is
// replaced atomically, so a failed run never leaves a partial file behind.
func (w *Writer) WriteAll(ctx context.Context, tax *taxonomy.Taxonomy, formats []Format) ([]string, error) {
	for _, f := range formats {
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}

	tax.Seal()
	outputs := w.plan(tax, formats)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, out := range outputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := writeFile(out.path, out.write); err != nil {
				return fmt.Errorf("write %s: %w", out.path, err)
			}
			w.logger.Debug("wrote distribution file", "path", out.path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	paths := make([]string, len(outputs))
	for i, out := range outputs {
		paths[i] = out.path
	}
	slices.Sort(paths)
	w.logger.Info("distribution written", "dir", w.outDir, "files", len(paths), "version", tax.Version)
	return paths, nil
}

func (w *Writer) plan(tax *taxonomy.Taxonomy, formats []Format) []output {
	bind := func(fn func(io.Writer, *taxonomy.Taxonomy) error) func(io.Writer) error {
		return func(wr io.Writer) error { return fn(wr, tax) }
	}

	var outputs []output
	for _, f := range formats {
		switch f {
		case FormatJSON:
			outputs = append(outputs,
				output{filepath.Join(w.outDir, CategoriesJSONFile), bind(WriteCategoriesJSON)},
				output{filepath.Join(w.outDir, AttributesJSONFile), bind(WriteAttributesJSON)},
			)
		case FormatText:
			outputs = append(outputs,
				output{filepath.Join(w.outDir, CategoriesTextFile), bind(WriteCategoriesText)},
				output{filepath.Join(w.outDir, AttributesTextFile), bind(WriteAttributesText)},
				output{filepath.Join(w.outDir, AttributeValuesTextFile), bind(WriteAttributeValuesText)},
			)
		case FormatMarkdown:
			for _, vertical := range tax.Verticals() {
				outputs = append(outputs, output{
					path:  filepath.Join(w.outDir, DocsDir, vertical.ID()+".md"),
					write: func(wr io.Writer) error { return WriteVerticalMarkdown(wr, tax, vertical) },
				})
			}
		}
	}
	return outputs
}

// writeFile writes through a temporary file in the target directory and
// renames it into place.
func writeFile(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := tmp.Chmod(filePerm); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
