package cashbook

import (
	"fmt"
	"slices"
	"strings"
)

// CategoryKind selects one of the two label sets of a Book.
type CategoryKind int

const (
	// StockCategory labels stock purchases (drinks, food...).
	StockCategory CategoryKind = iota
	// FixedConcept labels monthly fixed costs (rent, utilities...).
	FixedConcept
)

func (k CategoryKind) String() string {
	switch k {
	case StockCategory:
		return "stock"
	case FixedConcept:
		return "fixed"
	default:
		return "unknown"
	}
}

// ParseCategoryKind parses "stock" or "fixed".
func ParseCategoryKind(s string) (CategoryKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stock":
		return StockCategory, nil
	case "fixed":
		return FixedConcept, nil
	default:
		return 0, fmt.Errorf("unknown category kind %q, want stock or fixed: %w", s, ErrInvalidValue)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k CategoryKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *CategoryKind) UnmarshalText(text []byte) error {
	v, err := ParseCategoryKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Default labels of a new Book.
var (
	DefaultStockCategories = []string{"Drinks", "Food", "Cleaning", "Other"}
	DefaultFixedConcepts   = []string{"Rent", "Utilities", "Insurance", "Other"}
)

// CategorySet is an ordered, append-only set of labels.
// Membership is case-sensitive.
type CategorySet struct {
	labels []string
	index  map[string]struct{}
}

// NewCategorySet creates a set seeded with labels, duplicates are ignored.
func NewCategorySet(labels ...string) *CategorySet {
	s := &CategorySet{index: make(map[string]struct{})}
	for _, l := range labels {
		s.add(l)
	}
	return s
}

// normalizeLabel trims spaces around a label.
func normalizeLabel(label string) string { return strings.TrimSpace(label) }

// Contains reports whether label is in the set.
func (s *CategorySet) Contains(label string) bool {
	_, ok := s.index[normalizeLabel(label)]
	return ok
}

// Labels returns a copy of the labels in insertion order.
func (s *CategorySet) Labels() []string { return slices.Clone(s.labels) }

// add appends label, it returns ErrInvalidValue for an empty label and
// ErrAlreadyExists when the label is known.
func (s *CategorySet) add(label string) error {
	label = normalizeLabel(label)
	if label == "" {
		return fmt.Errorf("empty label: %w", ErrInvalidValue)
	}
	if _, ok := s.index[label]; ok {
		return fmt.Errorf("label %q: %w", label, ErrAlreadyExists)
	}
	s.index[label] = struct{}{}
	s.labels = append(s.labels, label)
	return nil
}

// Label records the addition of a label to one of the category sets.
type Label struct {
	Kind  CategoryKind `json:"kind"`
	Label string       `json:"label"`
}

// MarshalJSON implements the json.Marshaler interface for Label.
func (l Label) MarshalJSON() ([]byte, error) {
	var w objectWriter
	w.put("command", CmdCategory)
	w.put("kind", l.Kind)
	w.put("label", l.Label)
	return w.finish()
}
