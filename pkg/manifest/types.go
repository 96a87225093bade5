package manifest

import (
	"encoding/json"
	"sort"
)

// StringList is a manifest value that may be written as a single string or
// as a list of strings. It always decodes to a list.
type StringList []string

// UnmarshalJSON decodes a string or an array of strings. Values of any
// other type, and non-string array elements, are dropped rather than
// rejected: a package.json that parses must still resolve.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = StringList{one}
		return nil
	}

	var many []interface{}
	if err := json.Unmarshal(data, &many); err != nil {
		*l = StringList{}
		return nil
	}
	out := make(StringList, 0, len(many))
	for _, v := range many {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

// Topic describes a command topic.
type Topic struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Hidden      bool   `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Subtopics   Topics `json:"subtopics,omitempty" yaml:"subtopics,omitempty"`
}

// Topics maps topic names to their definitions.
type Topics map[string]*Topic

// Backfill returns a copy of t where every topic without a name takes its
// key as name, recursively. A nil receiver yields an empty map.
func (t Topics) Backfill() Topics {
	out := make(Topics, len(t))
	for key, topic := range t {
		var cp Topic
		if topic != nil {
			cp = *topic
		}
		if cp.Name == "" {
			cp.Name = key
		}
		if cp.Subtopics != nil {
			cp.Subtopics = cp.Subtopics.Backfill()
		}
		out[key] = &cp
	}
	return out
}

// Names returns the topic keys in sorted order.
func (t Topics) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizeLists copies a scalar-or-list mapping into plain lists. The result
// is never nil.
func NormalizeLists(in map[string]StringList) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = append([]string{}, v...)
	}
	return out
}
