package crawler

import "strings"

// SpecTable is an ordered label→value map built from a detail page's
// specification table. Iteration order is insertion order; setting an
// existing label replaces its value but keeps its original position.
type SpecTable struct {
	entries []SpecEntry
	index   map[string]int
}

// SpecEntry is one normalized specification row
type SpecEntry struct {
	Label string
	Value string
}

// NewSpecTable creates an empty specification table
func NewSpecTable() *SpecTable {
	return &SpecTable{index: make(map[string]int)}
}

// Set inserts a row under its normalized label. Rows with an empty label
// or value after trimming are dropped.
func (t *SpecTable) Set(label, value string) {
	label = NormalizeLabel(label)
	value = strings.TrimSpace(value)
	if label == "" || value == "" {
		return
	}
	if i, ok := t.index[label]; ok {
		t.entries[i].Value = value
		return
	}
	t.index[label] = len(t.entries)
	t.entries = append(t.entries, SpecEntry{Label: label, Value: value})
}

// Entries returns the rows in insertion order
func (t *SpecTable) Entries() []SpecEntry {
	return t.entries
}

// Len returns the number of rows
func (t *SpecTable) Len() int {
	return len(t.entries)
}

// NormalizeLabel lowercases a specification label, trims surrounding
// whitespace and strips a single trailing colon
func NormalizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.TrimSuffix(label, ":")
	return strings.TrimSpace(label)
}

// SpecFields holds the canonical attribute fields resolved from a
// specification table
type SpecFields struct {
	FabricType   *string
	Pattern      *string
	GSM          *string
	Usage        *string
	Availability *string
}

// specSynonyms maps each canonical field to the label substrings that
// select it
var specSynonyms = []struct {
	apply    func(*SpecFields, *string)
	synonyms []string
}{
	{func(f *SpecFields, v *string) { f.FabricType = v }, []string{"fabric", "material"}},
	{func(f *SpecFields, v *string) { f.Pattern = v }, []string{"pattern"}},
	{func(f *SpecFields, v *string) { f.GSM = v }, []string{"gsm"}},
	{func(f *SpecFields, v *string) { f.Usage = v }, []string{"usage"}},
	{func(f *SpecFields, v *string) { f.Availability = v }, []string{"availability"}},
}

// MatchSpecs resolves every canonical field against the table using
// substring containment. The whole table is walked in insertion order
// and a later matching label overwrites an earlier one, so when two
// labels match the same field the last one wins.
func MatchSpecs(table *SpecTable) SpecFields {
	var fields SpecFields
	for _, entry := range table.Entries() {
		for _, syn := range specSynonyms {
			for _, s := range syn.synonyms {
				if strings.Contains(entry.Label, s) {
					value := entry.Value
					syn.apply(&fields, &value)
					break
				}
			}
		}
	}
	return fields
}
