package waste

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTag is returned for items outside the vocabulary.
var ErrUnknownTag = errors.New("unknown waste item")

// Set is an insertion-ordered set of tags.
// The zero value is an empty set ready to use.
type Set struct {
	order []Tag
	index map[Tag]struct{}
}

// NewSet builds a set from tags, keeping the first occurrence of duplicates.
func NewSet(tags ...Tag) Set {
	var s Set
	for _, tag := range tags {
		s.Add(tag)
	}
	return s
}

// Add inserts tag and reports whether it was not yet present.
func (s *Set) Add(tag Tag) bool {
	if s.index == nil {
		s.index = make(map[Tag]struct{})
	}
	if _, ok := s.index[tag]; ok {
		return false
	}
	s.index[tag] = struct{}{}
	s.order = append(s.order, tag)
	return true
}

func (s Set) Has(tag Tag) bool {
	_, ok := s.index[tag]
	return ok
}

func (s Set) Len() int { return len(s.order) }

// Tags returns the members in insertion order.
func (s Set) Tags() []Tag {
	out := make([]Tag, len(s.order))
	copy(out, s.order)
	return out
}

// Strings returns the members as plain strings, in insertion order.
func (s Set) Strings() []string {
	out := make([]string, len(s.order))
	for i, tag := range s.order {
		out[i] = string(tag)
	}
	return out
}

// Intersect returns the members of tags that are in s, preserving the order of tags.
func (s Set) Intersect(tags []Tag) []Tag {
	shared := make([]Tag, 0)
	seen := make(map[Tag]struct{})
	for _, tag := range tags {
		if !s.Has(tag) {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		shared = append(shared, tag)
	}
	return shared
}

// Overlaps reports whether any of tags is in s.
func (s Set) Overlaps(tags []Tag) bool {
	for _, tag := range tags {
		if s.Has(tag) {
			return true
		}
	}
	return false
}

// ParseSet resolves user supplied items against the vocabulary, ignoring case
// and surrounding whitespace. The first unknown item fails the whole list.
func ParseSet(items []string) (Set, error) {
	var set Set
	for _, item := range items {
		tag, ok := Lookup(strings.TrimSpace(item))
		if !ok {
			return Set{}, fmt.Errorf("%w: %q", ErrUnknownTag, item)
		}
		set.Add(tag)
	}
	return set, nil
}
