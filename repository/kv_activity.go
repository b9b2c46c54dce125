package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/kaankoc/portfolio/kv"
	"github.com/kaankoc/portfolio/models"
)

const (
	logKeyPrefix = "log_"
	logTTL       = 7 * 24 * time.Hour

	// Okumada taranan maksimum key sayısı ve dönen entry sayısı.
	logScanLimit   = 100
	logReturnLimit = 50
)

// kvActivityRepo, ActivityRepository interface'inin kv.Store implementasyonu.
type kvActivityRepo struct {
	store kv.Store
}

// NewKVActivityRepo, constructor.
func NewKVActivityRepo(store kv.Store) ActivityRepository {
	return &kvActivityRepo{store: store}
}

func (r *kvActivityRepo) Append(ctx context.Context, entry models.LogEntry) error {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to serialize log entry: %w", err)
	}

	// Unix millisecond + uuid: aynı milisaniyede iki olay birbirini ezmez.
	key := fmt.Sprintf("%s%d_%s", logKeyPrefix, time.Now().UnixMilli(), uuid.NewString())
	if err := r.store.Set(ctx, key, data, logTTL); err != nil {
		return fmt.Errorf("failed to append log entry: %w", err)
	}
	return nil
}

func (r *kvActivityRepo) Recent(ctx context.Context) ([]models.LogEntry, error) {
	keys, err := r.store.Keys(ctx, logKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list log keys: %w", err)
	}

	if len(keys) > logScanLimit {
		keys = keys[:logScanLimit]
	}

	entries := make([]models.LogEntry, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if errors.Is(err, kv.ErrNotFound) {
			// Key listelendikten sonra TTL'i dolmuş olabilir.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read log entry %s: %w", key, err)
		}

		var entry models.LogEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}

	// En yeni en üstte.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})

	if len(entries) > logReturnLimit {
		entries = entries[:logReturnLimit]
	}
	return entries, nil
}
