package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/kaankoc/portfolio/models"
	"github.com/kaankoc/portfolio/pkg"
	"github.com/kaankoc/portfolio/repository"
)

// ContentService, içerik koleksiyonları ve iletişim mesajları iş mantığı.
type ContentService interface {
	// ListCollection / ReplaceCollection: admin panelinin whole-array
	// get/replace operasyonları. Koleksiyon adı whitelist'ten geçer,
	// kayıt şeması doğrulanmaz.
	ListCollection(ctx context.Context, collection string) ([]json.RawMessage, error)
	ReplaceCollection(ctx context.Context, collection string, records []json.RawMessage) error

	// SubmitContact, public iletişim formundan mesaj kaydı üretir.
	SubmitContact(ctx context.Context, req *models.ContactRequest) (*models.Message, error)

	ListMessages(ctx context.Context) ([]models.Message, error)
	DeleteMessage(ctx context.Context, id string) error
}

type contentService struct {
	contentRepo repository.ContentRepository
	messageRepo repository.MessageRepository
}

// NewContentService, constructor.
func NewContentService(contentRepo repository.ContentRepository, messageRepo repository.MessageRepository) ContentService {
	return &contentService{
		contentRepo: contentRepo,
		messageRepo: messageRepo,
	}
}

func (s *contentService) ListCollection(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if !repository.ValidCollection(collection) {
		return nil, fmt.Errorf("%w: unknown collection %q", pkg.ErrNotFound, collection)
	}
	return s.contentRepo.List(ctx, collection)
}

func (s *contentService) ReplaceCollection(ctx context.Context, collection string, records []json.RawMessage) error {
	if !repository.ValidCollection(collection) {
		return fmt.Errorf("%w: unknown collection %q", pkg.ErrNotFound, collection)
	}
	return s.contentRepo.Replace(ctx, collection, records)
}

func (s *contentService) SubmitContact(ctx context.Context, req *models.ContactRequest) (*models.Message, error) {
	if !req.Validate() {
		return nil, fmt.Errorf("%w: name, email and message are required", pkg.ErrBadRequest)
	}

	now := time.Now()
	msg := models.Message{
		// Unix millisecond ID — admin client'ın içerik kayıtları için
		// ürettiği timestamp bazlı ID'lerle aynı düzen.
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: now.UTC().Format(time.RFC3339),
		Read:      false,
	}

	if err := s.messageRepo.Prepend(ctx, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *contentService) ListMessages(ctx context.Context) ([]models.Message, error) {
	return s.messageRepo.List(ctx)
}

func (s *contentService) DeleteMessage(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", pkg.ErrBadRequest)
	}
	return s.messageRepo.DeleteByID(ctx, id)
}
