// SPDX-License-Identifier: MPL-2.0

package natsort

import (
	"cmp"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// KindNumeric is a number, fraction, or numeric range with optional units.
	KindNumeric Kind = iota
	// KindSequential is text with an optional numeric step ("Size 10", "A-1 to B-5").
	KindSequential
	// KindPlain is text with no recognizable numeric component.
	KindPlain

	// defaultSeparator stands in for a missing range separator so that single
	// values and ranges produce comparable keys.
	defaultSeparator = "-"
)

// ErrMalformed is the sentinel error wrapped by MalformedError.
var ErrMalformed = errors.New("malformed sort label")

var (
	numberPattern = `-?\d+\s+\d+\s*/\s*\d+|-?\d+\s*/\s*\d+|-?\d+(?:\.\d+)?`
	unitPattern   = `[^\d\s\-~/.][^\d\s\-~/]*(?:\s+[^\d\s\-~/]+)*`

	numericRegex = regexp.MustCompile(`(?i)^\s*` +
		`(?P<primary>` + numberPattern + `)` +
		`\s*(?P<unit>` + unitPattern + `)?` +
		`(?:\s*(?P<sep>[-x~])\s*(?P<secondary>` + numberPattern + `)\s*(?P<unit2>` + unitPattern + `)?)?` +
		`\s*$`)

	// A sequential unit is one word, so a separator word such as "to" is
	// never absorbed into it.
	tokenPattern = `[^\d\s\-~/.][^\d\s\-~/]*`

	// sequentialRangeRegex matches two stepped labels joined by a separator,
	// as in "A-1 to B-5" or "Ages 2-4". It is tried before sequentialRegex.
	sequentialRangeRegex = regexp.MustCompile(`(?i)^\s*` +
		`(?P<text>[^\d]+)(?P<step>\d+)` +
		`\s*(?P<unit>` + tokenPattern + `)?` +
		`\s*(?P<sep>[-~]|\b(?:x|to)\b)\s*(?P<text2>[^\d]*)(?P<step2>\d+)` +
		`\s*(?P<unit2>` + tokenPattern + `)?` +
		`(?P<trailing>.*)$`)

	sequentialRegex = regexp.MustCompile(`(?i)^\s*` +
		`(?P<text>[^\d]+)(?P<step>\d+)?` +
		`\s*(?P<unit>` + tokenPattern + `)?` +
		`(?P<trailing>.*)$`)

	// ligatures are not decomposed by NFD, so they are expanded explicitly.
	ligatures = strings.NewReplacer(
		"ß", "ss", "æ", "ae", "œ", "oe", "ø", "o", "ł", "l", "đ", "d", "þ", "th",
	)
)

type (
	// Kind classifies a label for ordering purposes.
	Kind int

	// Key is the canonical ordering key of a label. Keys are compared with
	// Compare; the zero Key is not meaningful.
	Key struct {
		kind  Kind
		parts []part
	}

	// part is one component of a Key tuple: text, a number, or the key of a
	// trailing label remainder.
	part struct {
		text    string
		number  float64
		numeric bool
		sub     *Key
	}

	// MalformedError is returned when a label looks numeric but one of its
	// numbers cannot be evaluated, such as a fraction with a zero denominator.
	MalformedError struct {
		Label  string
		Number string
	}
)

// String returns the lower-case name of the Kind.
func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindSequential:
		return "sequential"
	case KindPlain:
		return "plain"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// rank groups kinds for ordering: numeric labels come first, sequential and
// plain labels share a group and are ordered by their text.
func (k Kind) rank() int {
	if k == KindNumeric {
		return 0
	}
	return 1
}

// Kind returns the classification the key was built from.
func (k Key) Kind() Kind { return k.kind }

// Compare orders two keys, returning -1, 0, or +1.
func (k Key) Compare(other Key) int {
	if c := cmp.Compare(k.kind.rank(), other.kind.rank()); c != 0 {
		return c
	}
	for i := range min(len(k.parts), len(other.parts)) {
		if c := k.parts[i].compare(other.parts[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(k.parts), len(other.parts))
}

// String renders the key as a tuple, mainly for debugging and test output.
func (k Key) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(%d", k.kind.rank())
	for _, p := range k.parts {
		switch {
		case p.sub != nil:
			fmt.Fprintf(&sb, ", %s", p.sub)
		case p.numeric:
			fmt.Fprintf(&sb, ", %g", p.number)
		default:
			fmt.Fprintf(&sb, ", %q", p.text)
		}
	}
	sb.WriteString(")")
	return sb.String()
}

// compare orders numbers before text and text before nested keys.
func (p part) compare(other part) int {
	if p.sub != nil || other.sub != nil {
		switch {
		case p.sub != nil && other.sub != nil:
			return p.sub.Compare(*other.sub)
		case p.sub != nil:
			return 1
		default:
			return -1
		}
	}
	switch {
	case p.numeric && other.numeric:
		return cmp.Compare(p.number, other.number)
	case !p.numeric && !other.numeric:
		return strings.Compare(p.text, other.text)
	case p.numeric:
		return -1
	default:
		return 1
	}
}

// Error implements the error interface for MalformedError.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed sort label %q: cannot evaluate %q", e.Label, e.Number)
}

// Unwrap returns ErrMalformed for errors.Is() compatibility.
func (e *MalformedError) Unwrap() error { return ErrMalformed }

// Classify reports which shape label has.
func Classify(label string) Kind {
	switch {
	case numericRegex.MatchString(label):
		return KindNumeric
	case sequentialRangeRegex.MatchString(label), sequentialRegex.MatchString(label):
		return KindSequential
	default:
		return KindPlain
	}
}

// NewKey computes the ordering key of label without memoization.
func NewKey(label string) (Key, error) {
	if m := numericRegex.FindStringSubmatch(label); m != nil {
		return numericKey(label, m)
	}
	if m := sequentialRangeRegex.FindStringSubmatch(label); m != nil {
		return sequentialKey(label, sequentialRangeRegex, m)
	}
	if m := sequentialRegex.FindStringSubmatch(label); m != nil {
		return sequentialKey(label, sequentialRegex, m)
	}
	return Key{kind: KindPlain, parts: []part{textPart(NormalizeText(label))}}, nil
}

func numericKey(label string, m []string) (Key, error) {
	group := func(name string) string { return m[numericRegex.SubexpIndex(name)] }

	primary, err := evaluate(label, group("primary"))
	if err != nil {
		return Key{}, err
	}
	secondary, err := evaluate(label, group("secondary"))
	if err != nil {
		return Key{}, err
	}

	return Key{kind: KindNumeric, parts: []part{
		textPart(normalizeUnit(group("unit"))),
		textPart(normalizeSeparator(group("sep"))),
		numberPart(primary),
		numberPart(secondary),
	}}, nil
}

func sequentialKey(label string, re *regexp.Regexp, m []string) (Key, error) {
	group := func(name string) string {
		if i := re.SubexpIndex(name); i >= 0 {
			return m[i]
		}
		return ""
	}

	step, err := evaluate(label, group("step"))
	if err != nil {
		return Key{}, err
	}
	step2, err := evaluate(label, group("step2"))
	if err != nil {
		return Key{}, err
	}

	parts := []part{
		textPart(NormalizeText(group("text"))),
		numberPart(step),
		textPart(normalizeUnit(group("unit"))),
		textPart(normalizeSeparator(group("sep"))),
		textPart(NormalizeText(group("text2"))),
		numberPart(step2),
	}

	// The remainder gets a key of its own. It is always shorter than label.
	if trailing := strings.TrimSpace(group("trailing")); trailing != "" {
		sub, err := NewKey(trailing)
		if err != nil {
			return Key{}, err
		}
		parts = append(parts, part{sub: &sub})
	}

	return Key{kind: KindSequential, parts: parts}, nil
}

// evaluate converts a matched number to float64. Fractions and mixed fractions
// are summed exactly before conversion. An empty match evaluates to zero.
func evaluate(label, number string) (float64, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return 0, nil
	}

	negative := strings.HasPrefix(number, "-")
	number = strings.TrimPrefix(number, "-")
	// "3 / 4" and "3/4" are the same fraction; whitespace only separates the
	// whole part of a mixed fraction.
	number = strings.ReplaceAll(strings.ReplaceAll(number, " /", "/"), "/ ", "/")

	sum := new(big.Rat)
	for _, term := range strings.Fields(number) {
		r, ok := new(big.Rat).SetString(term)
		if !ok {
			return 0, &MalformedError{Label: label, Number: term}
		}
		sum.Add(sum, r)
	}
	if negative {
		sum.Neg(sum)
	}

	f, _ := sum.Float64()
	return f, nil
}

// NormalizeText trims, lower-cases, and strips diacritics from s so that
// locale variants of the same word compare equal.
func NormalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = ligatures.Replace(s)
	// A transformer chain carries state, so each call builds its own.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func normalizeUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

func normalizeSeparator(sep string) string {
	if sep == "" {
		return defaultSeparator
	}
	return strings.ToLower(sep)
}

func textPart(s string) part { return part{text: s} }

func numberPart(f float64) part { return part{number: f, numeric: true} }
