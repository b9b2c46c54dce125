package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kaankoc/portfolio/kv"
)

// kvContentRepo, ContentRepository interface'inin kv.Store implementasyonu.
type kvContentRepo struct {
	store kv.Store
}

// NewKVContentRepo, constructor.
func NewKVContentRepo(store kv.Store) ContentRepository {
	return &kvContentRepo{store: store}
}

func (r *kvContentRepo) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	data, err := r.store.Get(ctx, collection)
	if errors.Is(err, kv.ErrNotFound) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", collection, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse collection %s: %w", collection, err)
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return records, nil
}

func (r *kvContentRepo) Replace(ctx context.Context, collection string, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to serialize collection %s: %w", collection, err)
	}

	if err := r.store.Set(ctx, collection, data, 0); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", collection, err)
	}
	return nil
}
