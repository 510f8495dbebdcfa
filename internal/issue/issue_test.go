// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestValues_OrderedAndComplete(t *testing.T) {
	t.Parallel()

	values := Values()
	if len(values) != int(PermissionDeniedID) {
		t.Fatalf("Values() returned %d issues, want %d", len(values), PermissionDeniedID)
	}
	for i, issue := range values {
		if issue.ID() != ID(i+1) {
			t.Errorf("Values()[%d].ID() = %d, want %d", i, issue.ID(), i+1)
		}
		if Get(issue.ID()) != issue {
			t.Errorf("Get(%d) does not return the catalog entry", issue.ID())
		}
	}
}

func TestGet_Unknown(t *testing.T) {
	t.Parallel()

	if Get(0) != nil || Get(ID(999)) != nil {
		t.Error("Get() of an unknown id should return nil")
	}
}

func TestAllIssuesHaveHeading(t *testing.T) {
	t.Parallel()

	for _, issue := range Values() {
		msg := strings.TrimSpace(string(issue.MarkdownMsg()))
		if !strings.HasPrefix(msg, "# ") {
			t.Errorf("issue %d should start with a heading, got %q", issue.ID(), msg)
		}
	}
}

func TestIssue_Markdown(t *testing.T) {
	t.Parallel()

	withLinks := Get(SourceSchemaErrorID)
	md := withLinks.Markdown()
	if !strings.Contains(md, "## See also") || !strings.Contains(md, "<https://cuelang.org/docs/>") {
		t.Errorf("Markdown() should list doc links, got:\n%s", md)
	}

	links := withLinks.DocLinks()
	links[0] = "mutated"
	if withLinks.DocLinks()[0] == "mutated" {
		t.Error("DocLinks() should return a copy")
	}

	withoutLinks := Get(DuplicateKeyID)
	if strings.Contains(withoutLinks.Markdown(), "See also") {
		t.Error("Markdown() should omit the links section when there are none")
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	t.Parallel()

	for _, issue := range Values() {
		out, err := issue.Render("notty")
		if err != nil {
			t.Errorf("Render() of issue %d failed: %v", issue.ID(), err)
			continue
		}
		if strings.TrimSpace(out) == "" {
			t.Errorf("Render() of issue %d returned empty output", issue.ID())
		}
	}
}
