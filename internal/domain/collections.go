package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LanguageCount is one histogram bucket.
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}

// LanguageHistogram counts files per language and remembers the order in
// which each language was first observed. The zero value is ready to use.
type LanguageHistogram struct {
	entries []LanguageCount
	index   map[string]int
}

// Add increments the count for language, inserting it at the end if unseen.
func (h *LanguageHistogram) Add(language string) {
	if h.index == nil {
		h.index = make(map[string]int)
	}
	if i, ok := h.index[language]; ok {
		h.entries[i].Count++
		return
	}
	h.index[language] = len(h.entries)
	h.entries = append(h.entries, LanguageCount{Language: language, Count: 1})
}

func (h LanguageHistogram) Has(language string) bool {
	_, ok := h.index[language]
	return ok
}

func (h LanguageHistogram) Count(language string) int {
	if i, ok := h.index[language]; ok {
		return h.entries[i].Count
	}
	return 0
}

func (h LanguageHistogram) Len() int { return len(h.entries) }

// Entries returns a copy of the buckets in first-seen order.
func (h LanguageHistogram) Entries() []LanguageCount {
	out := make([]LanguageCount, len(h.entries))
	copy(out, h.entries)
	return out
}

// Names returns the languages in first-seen order.
func (h LanguageHistogram) Names() []string {
	out := make([]string, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, e.Language)
	}
	return out
}

// Total is the sum of all counts.
func (h LanguageHistogram) Total() int {
	total := 0
	for _, e := range h.entries {
		total += e.Count
	}
	return total
}

// Top returns the language with the strictly greatest count. Ties go to the
// language observed first.
func (h LanguageHistogram) Top() (string, bool) {
	best := -1
	for i, e := range h.entries {
		if best < 0 || e.Count > h.entries[best].Count {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return h.entries[best].Language, true
}

// MarshalJSON encodes the histogram as an object whose keys keep first-seen order.
func (h LanguageHistogram) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range h.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Language)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(e.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object produced by MarshalJSON, keeping key order.
func (h *LanguageHistogram) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*h = LanguageHistogram{}
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("language histogram: expected JSON object")
	}
	*h = LanguageHistogram{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var count int
		if err := dec.Decode(&count); err != nil {
			return err
		}
		if h.index == nil {
			h.index = make(map[string]int)
		}
		if count < 1 {
			continue
		}
		h.index[key] = len(h.entries)
		h.entries = append(h.entries, LanguageCount{Language: key, Count: count})
	}
	_, err = dec.Token()
	return err
}

// MarshalYAML encodes the histogram as an ordered mapping node.
func (h LanguageHistogram) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range h.entries {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Language},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(e.Count)},
		)
	}
	return node, nil
}

// TechnologySet is an insertion-ordered set of technology names.
type TechnologySet struct {
	items []string
	seen  map[string]struct{}
}

// NewTechnologySet builds a set from names, keeping the first occurrence of each.
func NewTechnologySet(names ...string) TechnologySet {
	var s TechnologySet
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name and reports whether it was new.
func (s *TechnologySet) Add(name string) bool {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[name]; ok {
		return false
	}
	s.seen[name] = struct{}{}
	s.items = append(s.items, name)
	return true
}

func (s TechnologySet) Has(name string) bool {
	_, ok := s.seen[name]
	return ok
}

func (s TechnologySet) Len() int { return len(s.items) }

// Items returns the names in insertion order.
func (s TechnologySet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// First returns the earliest inserted name.
func (s TechnologySet) First() (string, bool) {
	if len(s.items) == 0 {
		return "", false
	}
	return s.items[0], true
}

// Intersect returns the members of s that are also in other, in s's order.
func (s TechnologySet) Intersect(other map[string]bool) []string {
	out := []string{}
	for _, n := range s.items {
		if other[n] {
			out = append(out, n)
		}
	}
	return out
}

func (s TechnologySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Items())
}

func (s *TechnologySet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewTechnologySet(names...)
	return nil
}

func (s TechnologySet) MarshalYAML() (interface{}, error) {
	return s.Items(), nil
}
