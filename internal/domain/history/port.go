package history

import "context"

// Snapshot port (interface untuk durable slot penyimpanan history).
// Load returns nil bytes (not an error) when no snapshot exists yet, so the
// store degrades to empty history instead of failing on first run.
type Snapshot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}
