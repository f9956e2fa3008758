package history

import (
	"time"
)

// RecordID tipe untuk Record
type RecordID string

// Capacity of the history store. Once full, every insert evicts the oldest record.
const MaxHistory = 100

// PreviewLen is the number of leading characters kept in Record.Preview.
const PreviewLen = 150

// Record is one persisted classification event.
// A record is created once and never mutated; severity is derived at creation
// time and deliberately not recomputed when mapping rules change later.
type Record struct {
	ID             RecordID           `json:"id"`
	Source         string             `json:"source"`
	Preview        string             `json:"preview"`
	FullText       string             `json:"fullText"`
	Category       string             `json:"category"`
	Severity       Severity           `json:"severity"`
	Confidence     float64            `json:"confidence"`
	Keywords       []string           `json:"keywords"`
	Probabilities  map[string]float64 `json:"probabilities,omitempty"`
	Date           time.Time          `json:"date"`
	ModelUsed      string             `json:"modelUsed"`
	ProcessingTime float64            `json:"processingTime,omitempty"`
}

// Clone returns a copy safe to hand to consumers without exposing the
// store's own slices/maps.
func (r *Record) Clone() *Record {
	cp := *r
	if r.Keywords != nil {
		cp.Keywords = append([]string(nil), r.Keywords...)
	}
	if r.Probabilities != nil {
		cp.Probabilities = make(map[string]float64, len(r.Probabilities))
		for k, v := range r.Probabilities {
			cp.Probabilities[k] = v
		}
	}
	return &cp
}
