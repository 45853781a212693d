// Package identity joins export tables on a person's display name.
package identity

import (
	"strings"

	"github.com/thomaskoefod/linkedintel/pkg/models"
)

// Resolver maps a display name to the key rows are joined on. Two names refer
// to the same person iff their keys are equal.
type Resolver interface {
	Key(name string) string
}

// CaseFold joins on the trimmed, lower-cased name.
type CaseFold struct{}

func (CaseFold) Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Index holds per-person lookups built once from a dataset. It is read-only
// after Build and safe for concurrent readers.
type Index struct {
	resolver Resolver
	selfKey  string

	messages                map[string][]models.Message
	endorsementsReceived    map[string]int
	endorsementsGiven       map[string]int
	recommendationsReceived map[string]int
	recommendationsGiven    map[string]int
}

// Build indexes ds. self is the exporting user's own display name; messages
// are never indexed under it. A nil resolver means CaseFold.
func Build(ds *models.Dataset, self string, resolver Resolver) *Index {
	if resolver == nil {
		resolver = CaseFold{}
	}
	idx := &Index{
		resolver:                resolver,
		selfKey:                 resolver.Key(self),
		messages:                make(map[string][]models.Message),
		endorsementsReceived:    make(map[string]int),
		endorsementsGiven:       make(map[string]int),
		recommendationsReceived: make(map[string]int),
		recommendationsGiven:    make(map[string]int),
	}
	if ds == nil {
		return idx
	}

	for _, m := range ds.Messages {
		from, to := resolver.Key(m.From), resolver.Key(m.To)
		idx.addMessage(from, m)
		if to != from {
			idx.addMessage(to, m)
		}
	}
	for _, e := range ds.EndorsementsReceived {
		idx.endorsementsReceived[resolver.Key(e.Name)]++
	}
	for _, e := range ds.EndorsementsGiven {
		idx.endorsementsGiven[resolver.Key(e.Name)]++
	}
	for _, r := range ds.RecommendationsReceived {
		idx.recommendationsReceived[resolver.Key(r.Name)]++
	}
	for _, r := range ds.RecommendationsGiven {
		idx.recommendationsGiven[resolver.Key(r.Name)]++
	}
	return idx
}

func (idx *Index) addMessage(key string, m models.Message) {
	if key == "" || key == idx.selfKey {
		return
	}
	idx.messages[key] = append(idx.messages[key], m)
}

// Key resolves name with the index's resolver.
func (idx *Index) Key(name string) string {
	return idx.resolver.Key(name)
}

// IsSelf reports whether name resolves to the exporting user.
func (idx *Index) IsSelf(name string) bool {
	return idx.resolver.Key(name) == idx.selfKey
}

// Messages returns every message sent to or by name, in export order. The
// slice is shared and must not be modified.
func (idx *Index) Messages(name string) []models.Message {
	return idx.messages[idx.resolver.Key(name)]
}

// Counts of endorsements and recommendations exchanged with one person.
type Counts struct {
	EndorsementsReceived    int
	EndorsementsGiven       int
	RecommendationsReceived int
	RecommendationsGiven    int
}

func (idx *Index) Counts(name string) Counts {
	k := idx.resolver.Key(name)
	return Counts{
		EndorsementsReceived:    idx.endorsementsReceived[k],
		EndorsementsGiven:       idx.endorsementsGiven[k],
		RecommendationsReceived: idx.recommendationsReceived[k],
		RecommendationsGiven:    idx.recommendationsGiven[k],
	}
}
