package timeline

import (
	"sort"
	"time"

	"github.com/samudra-paket/tracking-service/internal/core/domain"
)

// AnnotatedEntry is one history record augmented with its presentation and a
// normalized actor display string, ready for sequential rendering.
type AnnotatedEntry struct {
	Status       string       `json:"status"`
	Presentation Presentation `json:"presentation"`
	Timestamp    time.Time    `json:"timestamp"`
	Location     string       `json:"location,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	Actor        string       `json:"user,omitempty"`
}

// Projection is the display-ready view of a shipment's status history.
//
// Empty distinguishes "no history at all" from a list that happens to render
// nothing: callers check Empty to show a placeholder instead of iterating a
// zero-length sequence. The distinction is carried explicitly so call sites
// never fall back to length checks.
type Projection struct {
	Empty   bool             `json:"empty"`
	Entries []AnnotatedEntry `json:"entries"`
}

// Project orders the given history most-recent-first and annotates every
// entry with its presentation. The input slice is never mutated; ordering is
// stable, so entries with equal timestamps keep their original relative
// order. Entries with a zero timestamp (missing or unparseable upstream)
// sort after all dated entries, again preserving input order among
// themselves.
func Project(history []domain.StatusHistoryEntry) Projection {
	if len(history) == 0 {
		return Projection{Empty: true, Entries: []AnnotatedEntry{}}
	}

	ordered := make([]domain.StatusHistoryEntry, len(history))
	copy(ordered, history)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Timestamp, ordered[j].Timestamp
		if a.IsZero() || b.IsZero() {
			// Dated entries come before undated ones.
			return !a.IsZero() && b.IsZero()
		}
		return a.After(b)
	})

	entries := make([]AnnotatedEntry, len(ordered))
	for i, e := range ordered {
		entries[i] = AnnotatedEntry{
			Status:       string(e.Status),
			Presentation: Classify(string(e.Status)),
			Timestamp:    e.Timestamp,
			Location:     e.Location,
			Notes:        e.Notes,
			Actor:        e.Actor.DisplayName(),
		}
	}
	return Projection{Entries: entries}
}
