package storage

import "sort"

// Index maps names to UUIDs and keeps a summary per stored entity
type Index struct {
	NameToID  map[string]string        `json:"name_to_id"`
	Summaries map[string]EntitySummary `json:"summaries"`
}

// NewIndex creates a new empty index
func NewIndex() *Index {
	return &Index{
		NameToID:  make(map[string]string),
		Summaries: make(map[string]EntitySummary),
	}
}

// Add records a summary, replacing any previous name mapping for its ID
func (idx *Index) Add(summary EntitySummary) {
	for name, id := range idx.NameToID {
		if id == summary.ID {
			delete(idx.NameToID, name)
		}
	}
	idx.NameToID[summary.Name] = summary.ID
	idx.Summaries[summary.ID] = summary
}

// Remove drops the entity named or identified by nameOrUUID
func (idx *Index) Remove(nameOrUUID string) {
	id, ok := idx.Resolve(nameOrUUID)
	if !ok {
		return
	}
	delete(idx.Summaries, id)
	for name, mapped := range idx.NameToID {
		if mapped == id {
			delete(idx.NameToID, name)
		}
	}
}

// Resolve returns the UUID for a name or UUID
func (idx *Index) Resolve(nameOrUUID string) (string, bool) {
	if _, exists := idx.Summaries[nameOrUUID]; exists {
		return nameOrUUID, true
	}
	id, exists := idx.NameToID[nameOrUUID]
	return id, exists
}

// List returns all summaries sorted by name
func (idx *Index) List() []EntitySummary {
	summaries := make([]EntitySummary, 0, len(idx.Summaries))
	for _, summary := range idx.Summaries {
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries
}
