package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/kaankoc/portfolio/kv"
	"github.com/kaankoc/portfolio/models"
	"github.com/kaankoc/portfolio/pkg"
	"github.com/kaankoc/portfolio/repository"
)

func newTestContentService(t *testing.T) ContentService {
	t.Helper()
	store := kv.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return NewContentService(repository.NewKVContentRepo(store), repository.NewKVMessageRepo(store))
}

func TestListUnknownCollection(t *testing.T) {
	svc := newTestContentService(t)

	_, err := svc.ListCollection(context.Background(), "secrets")
	if !errors.Is(err, pkg.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown collection, got %v", err)
	}
}

func TestSubmitContactGeneratesRecord(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	msg, err := svc.SubmitContact(ctx, &models.ContactRequest{
		Name:    "Ali Veli",
		Email:   "ali@example.com",
		Message: "Merhaba, proje hakkında konuşmak isterim.",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if msg.ID == "" {
		t.Error("expected generated id")
	}
	if msg.Read {
		t.Error("new message must start unread")
	}
	if _, err := time.Parse(time.RFC3339, msg.CreatedAt); err != nil {
		t.Errorf("createdAt is not RFC3339: %q", msg.CreatedAt)
	}

	messages, err := svc.ListMessages(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(messages) != 1 || messages[0].ID != msg.ID {
		t.Errorf("expected stored message %s, got %v", msg.ID, messages)
	}
}

func TestSubmitContactRejectsBlankFields(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	cases := []models.ContactRequest{
		{Name: "", Email: "a@b.c", Message: "hi"},
		{Name: "Ali", Email: "", Message: "hi"},
		{Name: "Ali", Email: "a@b.c", Message: "   "},
	}
	for i, req := range cases {
		if _, err := svc.SubmitContact(ctx, &req); !errors.Is(err, pkg.ErrBadRequest) {
			t.Errorf("case %d: expected ErrBadRequest, got %v", i, err)
		}
	}
}

func TestReplaceCollectionTypedRecords(t *testing.T) {
	svc := newTestContentService(t)
	ctx := context.Background()

	project := models.Project{
		ID:           "1700000000000",
		Title:        models.LocalizedText{TR: "Portfolyo Sitesi", EN: "Portfolio Site"},
		Description:  models.LocalizedText{TR: "Kişisel site", EN: "Personal site"},
		Technologies: []string{"go", "redis"},
		GithubURL:    "https://github.com/kaankoc/portfolio",
		Featured:     true,
		Order:        1,
	}
	raw, err := json.Marshal(project)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if err := svc.ReplaceCollection(ctx, "projects", []json.RawMessage{raw}); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	records, err := svc.ListCollection(ctx, "projects")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	var got models.Project
	if err := json.Unmarshal(records[0], &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Title.TR != project.Title.TR || got.GithubURL != project.GithubURL {
		t.Errorf("record mismatch: %+v", got)
	}
}

func TestDeleteMessageRequiresID(t *testing.T) {
	svc := newTestContentService(t)

	if err := svc.DeleteMessage(context.Background(), ""); !errors.Is(err, pkg.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest for empty id, got %v", err)
	}
}
