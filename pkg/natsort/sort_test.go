// SPDX-License-Identifier: MPL-2.0

package natsort

import (
	"errors"
	"slices"
	"testing"
)

func TestStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []string
		want  []string
		opts  []Option
	}{
		{
			name:  "integers by value",
			input: []string{"10", "2", "1"},
			want:  []string{"1", "2", "10"},
		},
		{
			name:  "fractions by value",
			input: []string{"3/4", "1/2", "1"},
			want:  []string{"1/2", "3/4", "1"},
		},
		{
			name:  "mixed fractions",
			input: []string{"2 5/8", "2", "2 1/4", "3"},
			want:  []string{"2", "2 1/4", "2 5/8", "3"},
		},
		{
			name:  "units",
			input: []string{"10kg", "2kg", "1kg"},
			want:  []string{"1kg", "2kg", "10kg"},
		},
		{
			name:  "units group before values",
			input: []string{"5 m", "10 cm", "1 m", "20 cm"},
			want:  []string{"10 cm", "20 cm", "1 m", "5 m"},
		},
		{
			name:  "ranges",
			input: []string{"10-20", "1-5", "5-10", "1-2"},
			want:  []string{"1-2", "1-5", "5-10", "10-20"},
		},
		{
			name:  "dimensions",
			input: []string{"4 x 6 in", "2 x 3 in", "2 x 2 in"},
			want:  []string{"2 x 2 in", "2 x 3 in", "4 x 6 in"},
		},
		{
			name:  "decimals and negatives",
			input: []string{"1.5", "-3", "0.25", "1"},
			want:  []string{"-3", "0.25", "1", "1.5"},
		},
		{
			name:  "numbers before text",
			input: []string{"Large", "2", "Small"},
			want:  []string{"2", "Large", "Small"},
		},
		{
			name:  "sequential steps",
			input: []string{"Size 10", "Size 2", "Size 1"},
			want:  []string{"Size 1", "Size 2", "Size 10"},
		},
		{
			name:  "sequential ranges by second step",
			input: []string{"A-1 to B-10", "A-1 to B-5"},
			want:  []string{"A-1 to B-5", "A-1 to B-10"},
		},
		{
			name:  "sequential ranges without second text",
			input: []string{"Ages 2-10", "Ages 2-4"},
			want:  []string{"Ages 2-4", "Ages 2-10"},
		},
		{
			name:  "sequential ranges after single steps",
			input: []string{"Ages 3", "Ages 2-10", "Ages 2"},
			want:  []string{"Ages 2", "Ages 2-10", "Ages 3"},
		},
		{
			name:  "case and diacritics ignored",
			input: []string{"éclair", "Banana", "apple", "Eclair"},
			want:  []string{"apple", "Banana", "éclair", "Eclair"},
		},
		{
			name:  "other last",
			input: []string{"Red", "Other", "Blue"},
			want:  []string{"Blue", "Red", "Other"},
			opts:  []Option{WithOtherLast()},
		},
		{
			name:  "other sorted naturally without option",
			input: []string{"Red", "Other", "Blue"},
			want:  []string{"Blue", "Other", "Red"},
		},
		{
			name:  "empty input",
			input: []string{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewSorter().Strings(tt.input, tt.opts...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Strings(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStrings_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := [][]string{
		{"10", "2", "1", "Other", "abc", "2 1/2", "10-20 cm", "Size 3", "size 3"},
		{"XL", "S", "M", "L", "other", "XS"},
		{"Pack of 12", "Pack of 2", "12abc34", "", "  ", "1/2/3"},
	}

	s := NewSorter()
	for _, input := range inputs {
		once, err := s.Strings(input, WithOtherLast())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		twice, err := s.Strings(once, WithOtherLast())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !slices.Equal(once, twice) {
			t.Errorf("sorting is not idempotent:\n once  %q\n twice %q", once, twice)
		}
	}
}

func TestStrings_TieStability(t *testing.T) {
	t.Parallel()

	// Both labels normalize to the same key.
	got, err := NewSorter().Strings([]string{"Café", "b", "cafe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"b", "Café", "cafe"}
	if !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}

	got, err = NewSorter().Strings([]string{"cafe", "b", "Café"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = []string{"b", "cafe", "Café"}
	if !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStrings_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	input := []string{"b", "a"}
	if _, err := Strings(input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(input, []string{"b", "a"}) {
		t.Errorf("input was modified: %q", input)
	}
}

func TestStrings_MalformedFraction(t *testing.T) {
	t.Parallel()

	_, err := NewSorter().Strings([]string{"1", "3/0"})
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedError, got %T", err)
	}
	if malformed.Label != "3/0" {
		t.Errorf("Label = %q, want %q", malformed.Label, "3/0")
	}
}

type named struct {
	name string
	id   int
}

func TestSortFunc(t *testing.T) {
	t.Parallel()

	items := []named{{"Other", 1}, {"10 mm", 2}, {"2 mm", 3}, {"Other", 4}}
	got, err := SortFunc(NewSorter(), items, func(n named) string { return n.name }, WithOtherLast())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := make([]int, len(got))
	for i, n := range got {
		ids[i] = n.id
	}
	if want := []int{3, 2, 1, 4}; !slices.Equal(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}
}

func TestSorter_CacheAndReset(t *testing.T) {
	t.Parallel()

	s := NewSorter()
	if _, err := s.Strings([]string{"a", "b", "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}

	if _, err := s.Key("1/0"); err == nil {
		t.Fatal("expected error for zero denominator")
	}
	if s.Len() != 2 {
		t.Errorf("failed keys must not be cached, Len() = %d", s.Len())
	}

	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", s.Len())
	}
}

func TestSorter_Compare(t *testing.T) {
	t.Parallel()

	s := NewSorter()
	c, err := s.Compare("9", "10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c >= 0 {
		t.Errorf("Compare(9, 10) = %d, want negative", c)
	}
	if _, err := s.Compare("1/0", "1"); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}
