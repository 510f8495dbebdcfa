// SPDX-License-Identifier: MPL-2.0

package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/taxon/taxon/pkg/cueutil"
)

const (
	valuesSource     = "values"
	attributesSource = "attributes"
	categoriesDir    = "categories"

	// recordsKey holds the records of list files. YAML list files are
	// wrapped into it; TOML files declare it as an array of tables.
	recordsKey = "records"

	extTOML = ".toml"
)

var sourceExtensions = []string{".yml", ".yaml", extTOML}

// findSource returns the single existing file named base with a supported
// extension in dir.
func findSource(dir, base string) (string, error) {
	var found []string
	for _, ext := range sourceExtensions {
		path := filepath.Join(dir, base+ext)
		_, err := os.Stat(path)
		switch {
		case err == nil:
			found = append(found, path)
		case !errors.Is(err, fs.ErrNotExist):
			return "", &SourceError{Path: path, Err: err}
		}
	}

	switch len(found) {
	case 0:
		return "", &SourceError{Path: filepath.Join(dir, base+sourceExtensions[0]), Err: ErrSourceNotFound}
	case 1:
		return found[0], nil
	default:
		return "", &SourceError{Path: found[0], Err: fmt.Errorf("%w: %s", ErrAmbiguousSource, strings.Join(found, ", "))}
	}
}

// categorySources lists the vertical files of dir/categories in file name order.
func categorySources(dir string) ([]string, error) {
	root := filepath.Join(dir, categoriesDir)
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceError{Path: root, Err: ErrSourceNotFound}
		}
		return nil, &SourceError{Path: root, Err: err}
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !slices.Contains(sourceExtensions, filepath.Ext(entry.Name())) {
			continue
		}
		paths = append(paths, filepath.Join(root, entry.Name()))
	}
	if len(paths) == 0 {
		return nil, &SourceError{Path: root, Err: fmt.Errorf("%w: no vertical files", ErrSourceNotFound)}
	}
	return paths, nil
}

// readSource reads path, decodes it as YAML or TOML, checks it against the
// schema definition, and decodes it into T.
func readSource[T any](path, definition string, list bool, maxSize int64) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	if err := cueutil.CheckFileSize(data, maxSize, path); err != nil {
		return nil, err
	}

	doc, err := decodeDocument(path, data, list)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}

	result, err := cueutil.DecodeValue[T](schemaBytes, doc, definition, cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}

// decodeDocument unmarshals data into generic Go values. List files are
// returned as {records: [...]} whatever their format.
func decodeDocument(path string, data []byte, list bool) (any, error) {
	var doc any
	if filepath.Ext(path) == extTOML {
		table := make(map[string]any)
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
		doc = table
	} else if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode YAML: %w", err)
	}

	if !list {
		if doc == nil {
			return map[string]any{}, nil
		}
		return doc, nil
	}

	switch d := doc.(type) {
	case nil:
		return map[string]any{recordsKey: []any{}}, nil
	case []any:
		return map[string]any{recordsKey: d}, nil
	case map[string]any:
		if _, ok := d[recordsKey]; !ok && len(d) == 0 {
			d[recordsKey] = []any{}
		}
		return d, nil
	default:
		return nil, fmt.Errorf("expected a list of records, got %T", doc)
	}
}
