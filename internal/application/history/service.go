package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bryanwahyu/darkwatch/internal/domain/classifier"
	domain "github.com/bryanwahyu/darkwatch/internal/domain/history"
)

// Service implements use-cases untuk analysis history.
// The store is a bounded list persisted as a single JSON snapshot: every
// mutation re-reads the current snapshot, applies the change and writes the
// whole list back, so the capacity invariant holds atomically from the
// caller's point of view.
type Service struct {
	Snapshots domain.Snapshot
	Clock     Clock
}

// Clock abstraction supaya gampang ditest
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// History returns the stored records, most recent first.
// Missing or corrupt snapshots degrade to empty history.
func (s *Service) History(ctx context.Context) ([]*domain.Record, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Record, 0, len(records))
	for _, r := range records {
		out = append(out, r.Clone())
	}
	return out, nil
}

// SaveToHistory builds a record from a classification result and prepends it,
// evicting the oldest record once the store is at capacity.
func (s *Service) SaveToHistory(ctx context.Context, res *classifier.Result, source, text string) (*domain.Record, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	rec := domain.NewRecord(res, source, text, s.Clock.Now())

	records = append([]*domain.Record{rec}, records...)
	if len(records) > domain.MaxHistory {
		records = records[:domain.MaxHistory]
	}

	if err := s.persist(ctx, records); err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

// DeleteFromHistory removes the record with the given id. Returns false when
// no record matched; that is not an error at store level.
func (s *Service) DeleteFromHistory(ctx context.Context, id domain.RecordID) (bool, error) {
	records, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]*domain.Record, 0, len(records))
	found := false
	for _, r := range records {
		if r.ID == id && !found {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return false, nil
	}
	if err := s.persist(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// ClearHistory persists an empty list. Idempotent.
func (s *Service) ClearHistory(ctx context.Context) error {
	return s.persist(ctx, []*domain.Record{})
}

// GetRecordByID returns one record or domain.ErrNotFound.
func (s *Service) GetRecordByID(ctx context.Context, id domain.RecordID) (*domain.Record, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID == id {
			return r.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

// CalculateStats recomputes dashboard statistics from the full record list.
func (s *Service) CalculateStats(ctx context.Context) (*domain.DashboardStats, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return domain.CalculateStats(records, s.Clock.Now()), nil
}

// Query filters then paginates the stored records for the database view.
func (s *Service) Query(ctx context.Context, q domain.Query, page, pageSize int) (domain.PaginatedResult, error) {
	records, err := s.load(ctx)
	if err != nil {
		return domain.PaginatedResult{}, err
	}
	return domain.Paginate(domain.Filter(records, q), page, pageSize), nil
}

// load reads the current snapshot. An absent slot or unparsable payload is
// treated as empty history, never as an error; only transport failures
// (e.g. database down) propagate.
func (s *Service) load(ctx context.Context) ([]*domain.Record, error) {
	data, err := s.Snapshots.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading history snapshot: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var records []*domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		// korup: anggap kosong, jangan gagalkan caller
		return nil, nil
	}
	return records, nil
}

// persist serializes and writes the full list as the new durable snapshot.
// Write failures surface as errors so callers never lose data silently.
func (s *Service) persist(ctx context.Context, records []*domain.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding history snapshot: %w", err)
	}
	if err := s.Snapshots.Save(ctx, data); err != nil {
		return fmt.Errorf("saving history snapshot: %w", err)
	}
	return nil
}
