// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	DataDirNotFoundID ID = iota + 1
	SourceSchemaErrorID
	DuplicateKeyID
	UnknownReferenceID
	DependencyCycleID
	InvalidTaxonomyID
	MalformedLabelID
	CategoryNotFoundID
	ConfigLoadFailedID
	InvalidFormatID
	PermissionDeniedID
)

type (
	// ID identifies an entry of the issue catalog.
	ID int

	// MarkdownMsg is the markdown body of an issue.
	MarkdownMsg string

	// HTTPLink is a documentation link shown under "See also".
	HTTPLink string

	// Issue is a catalog entry explaining a class of failure and how to fix it.
	Issue struct {
		id       ID
		mdMsg    MarkdownMsg
		docLinks []HTTPLink
	}
)

// render is replaceable in tests.
var render = glamour.Render

// ID returns the catalog id.
func (i *Issue) ID() ID { return i.id }

// MarkdownMsg returns the raw markdown body.
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// DocLinks returns a copy of the documentation links.
func (i *Issue) DocLinks() []HTTPLink { return slices.Clone(i.docLinks) }

// Markdown returns the body followed by a "See also" section when the issue
// has links.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			fmt.Fprintf(&sb, "- <%s>\n", link)
		}
	}
	return sb.String()
}

// Render renders the issue for the terminal with the given glamour style
// ("auto", "dark", "light", "notty", or a path to a style file).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	dataDirNotFoundIssue = &Issue{
		id: DataDirNotFoundID,
		mdMsg: `
# Taxonomy data not found!

A required source file or directory is missing.

## Expected layout
~~~
data/
  values.yml
  attributes.yml
  categories/
    aa.yml
~~~

Every file may use the ` + "`.yml`" + `, ` + "`.yaml`" + ` or ` + "`.toml`" + ` extension, but only one of them.

## Things you can try
- Point taxon at your data directory:
~~~
$ taxon validate --data ./data
~~~
- Or set ` + "`data_dir`" + ` in your config file (` + "`taxon config path`" + ` shows where it lives).`,
	}

	sourceSchemaErrorIssue = &Issue{
		id: SourceSchemaErrorID,
		mdMsg: `
# A source file does not match the schema!

Each error names the file and the record path, for example
` + "`values.yml: records[3].handle`" + `.

## Common issues
- A required field is missing (` + "`id`" + `, ` + "`name`" + `, ` + "`friendly_id`" + `, ` + "`handle`" + `)
- A number where a string is expected: quote names such as ` + "`\"10\"`" + ` in YAML
- An unknown field name (the schema is closed)
- A category id that is not lowercase letters followed by numeric segments`,
		docLinks: []HTTPLink{"https://cuelang.org/docs/"},
	}

	duplicateKeyIssue = &Issue{
		id: DuplicateKeyID,
		mdMsg: `
# Duplicate identifier!

Ids, friendly ids, and handles must be unique within their kind. The first
record keeps the key; later records claiming it are rejected.

## Things you can try
- Search the sources for the reported key and rename one of the records
- For values, keep the ` + "`<attribute>__<value>`" + ` friendly id form so keys stay distinct`,
	}

	unknownReferenceIssue = &Issue{
		id: UnknownReferenceID,
		mdMsg: `
# Reference to an unknown record!

A record refers to a value, attribute, or category that does not exist.

## Where references appear
- ` + "`attributes.yml`" + `: ` + "`values`" + ` lists value friendly ids
- ` + "`attributes.yml`" + `: ` + "`values_from`" + ` names an attribute friendly id
- ` + "`categories/*.yml`" + `: ` + "`children`" + ` lists category ids and ` + "`attributes`" + ` lists attribute friendly ids`,
	}

	dependencyCycleIssue = &Issue{
		id: DependencyCycleID,
		mdMsg: `
# Cycle detected!

Either an extended attribute takes its values from itself through a chain of
` + "`values_from`" + ` links, or a category lists one of its ancestors as a child.

## Things you can try
- Follow the chain printed in the error and break it
- Make sure each category is listed as a child exactly once`,
	}

	invalidTaxonomyIssue = &Issue{
		id: InvalidTaxonomyID,
		mdMsg: `
# The taxonomy is invalid!

The records were loaded, but the resulting tree breaks a structural rule.
Every problem of one category is reported together.

## Rules
- A vertical id is two lowercase letters (` + "`aa`" + `)
- A child id extends its parent's id with one numeric segment (` + "`aa-1`" + `, ` + "`aa-1-4`" + `)
- Names are never blank
- Every value's friendly id starts with the friendly id of an existing attribute`,
	}

	malformedLabelIssue = &Issue{
		id: MalformedLabelID,
		mdMsg: `
# A label could not be ordered!

Natural ordering reads numbers in labels, including fractions such as
` + "`1/2`" + ` and mixed numbers such as ` + "`1 1/2`" + `. A fraction with a zero
denominator cannot be evaluated.

## Things you can try
- Fix the label reported in the error
- Use custom sorting for the attribute (` + "`sorting: custom`" + `) to keep source order`,
	}

	categoryNotFoundIssue = &Issue{
		id: CategoryNotFoundID,
		mdMsg: `
# Category not found!

## Things you can try
- Use the short id, for example ` + "`aa-1-2`" + `
- List every id with:
~~~
$ taxon dist --format txt
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedID,
		mdMsg: `
# Failed to load configuration!

## Things you can try
- Check the CUE syntax of your config file
- Find the file that was read:
~~~
$ taxon config path
~~~
- Unset ` + "`TAXON_*`" + ` environment variables that carry invalid values`,
		docLinks: []HTTPLink{"https://cuelang.org/docs/"},
	}

	invalidFormatIssue = &Issue{
		id: InvalidFormatID,
		mdMsg: `
# Unknown distribution format!

Valid formats are ` + "`json`" + `, ` + "`txt`" + ` and ` + "`md`" + `.

~~~
$ taxon dist --format json --format txt
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedID,
		mdMsg: `
# Permission denied!

taxon could not read a source file or write to the output directory.

## Things you can try
- Check the permissions of the reported path
- Write somewhere else with ` + "`taxon dist --out DIR`",
	}

	issues = map[ID]*Issue{
		dataDirNotFoundIssue.ID():   dataDirNotFoundIssue,
		sourceSchemaErrorIssue.ID(): sourceSchemaErrorIssue,
		duplicateKeyIssue.ID():      duplicateKeyIssue,
		unknownReferenceIssue.ID():  unknownReferenceIssue,
		dependencyCycleIssue.ID():   dependencyCycleIssue,
		invalidTaxonomyIssue.ID():   invalidTaxonomyIssue,
		malformedLabelIssue.ID():    malformedLabelIssue,
		categoryNotFoundIssue.ID():  categoryNotFoundIssue,
		configLoadFailedIssue.ID():  configLoadFailedIssue,
		invalidFormatIssue.ID():     invalidFormatIssue,
		permissionDeniedIssue.ID():  permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	ids := slices.Sorted(maps.Keys(issues))
	out := make([]*Issue, len(ids))
	for i, id := range ids {
		out[i] = issues[id]
	}
	return out
}

// Get returns the catalog entry for id, or nil.
func Get(id ID) *Issue {
	return issues[id]
}
