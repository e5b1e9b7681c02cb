package domain

import (
	"encoding/json"
	"strings"
)

// CategorySet is an insertion-ordered set of product/order categories
// that staff can extend at runtime.
type CategorySet struct {
	names []string
}

func NewCategorySet(names ...string) *CategorySet {
	s := &CategorySet{}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add appends name if it is non-blank and not yet present.
func (s *CategorySet) Add(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || s.Contains(name) {
		return false
	}
	s.names = append(s.names, name)
	return true
}

func (s *CategorySet) Contains(name string) bool {
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}

// List returns the categories in insertion order.
func (s *CategorySet) List() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *CategorySet) Len() int { return len(s.names) }

func (s *CategorySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

func (s *CategorySet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	s.names = nil
	for _, n := range names {
		s.Add(n)
	}
	return nil
}
