package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kaankoc/portfolio/kv"
	"github.com/kaankoc/portfolio/models"
)

// kvMessageRepo, MessageRepository interface'inin kv.Store implementasyonu.
type kvMessageRepo struct {
	store kv.Store
}

// NewKVMessageRepo, constructor.
func NewKVMessageRepo(store kv.Store) MessageRepository {
	return &kvMessageRepo{store: store}
}

func (r *kvMessageRepo) List(ctx context.Context) ([]models.Message, error) {
	data, err := r.store.Get(ctx, CollectionMessages)
	if errors.Is(err, kv.ErrNotFound) {
		return []models.Message{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	var messages []models.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	return messages, nil
}

func (r *kvMessageRepo) Prepend(ctx context.Context, msg models.Message) error {
	messages, err := r.List(ctx)
	if err != nil {
		return err
	}

	messages = append([]models.Message{msg}, messages...)
	return r.write(ctx, messages)
}

func (r *kvMessageRepo) DeleteByID(ctx context.Context, id string) error {
	messages, err := r.List(ctx)
	if err != nil {
		return err
	}

	filtered := messages[:0]
	for _, m := range messages {
		if m.ID != id {
			filtered = append(filtered, m)
		}
	}

	return r.write(ctx, filtered)
}

func (r *kvMessageRepo) write(ctx context.Context, messages []models.Message) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to serialize messages: %w", err)
	}
	if err := r.store.Set(ctx, CollectionMessages, data, 0); err != nil {
		return fmt.Errorf("failed to write messages: %w", err)
	}
	return nil
}
