package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kaankoc/portfolio/kv"
	"github.com/kaankoc/portfolio/models"
)

func TestValidCollection(t *testing.T) {
	for _, name := range []string{CollectionProjects, CollectionExperience, CollectionEducation, CollectionCertificates} {
		if !ValidCollection(name) {
			t.Errorf("expected %q to be valid", name)
		}
	}

	// messages kendi endpoint'inden yönetilir, koleksiyon API'sinden değil.
	for _, name := range []string{"messages", "users", "", "projects/../secrets"} {
		if ValidCollection(name) {
			t.Errorf("expected %q to be invalid", name)
		}
	}
}

func TestContentRepoEmptyCollection(t *testing.T) {
	store := kv.NewMemoryStore()
	defer store.Close()
	repo := NewKVContentRepo(store)

	records, err := repo.List(context.Background(), CollectionProjects)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if records == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(records) != 0 {
		t.Errorf("expected 0 records, got %d", len(records))
	}
}

func TestContentRepoReplaceRoundTrip(t *testing.T) {
	store := kv.NewMemoryStore()
	defer store.Close()
	repo := NewKVContentRepo(store)
	ctx := context.Background()

	records := []json.RawMessage{
		json.RawMessage(`{"id":"1","title":{"tr":"Proje","en":"Project"}}`),
		json.RawMessage(`{"id":"2","custom":"schema is not validated"}`),
	}
	if err := repo.Replace(ctx, CollectionProjects, records); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	got, err := repo.List(ctx, CollectionProjects)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}

	// İkinci replace ilkinin TAMAMININ yerine geçer.
	if err := repo.Replace(ctx, CollectionProjects, records[:1]); err != nil {
		t.Fatalf("second replace failed: %v", err)
	}
	got, _ = repo.List(ctx, CollectionProjects)
	if len(got) != 1 {
		t.Errorf("expected full replacement to leave 1 record, got %d", len(got))
	}
}

func TestContentRepoNilRecords(t *testing.T) {
	store := kv.NewMemoryStore()
	defer store.Close()
	repo := NewKVContentRepo(store)
	ctx := context.Background()

	if err := repo.Replace(ctx, CollectionProjects, nil); err != nil {
		t.Fatalf("replace with nil failed: %v", err)
	}

	got, err := repo.List(ctx, CollectionProjects)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty array after nil replace, got %v", got)
	}
}

func TestMessageRepoPrependAndDelete(t *testing.T) {
	store := kv.NewMemoryStore()
	defer store.Close()
	repo := NewKVMessageRepo(store)
	ctx := context.Background()

	first := models.Message{ID: "1", Name: "Ali", Email: "ali@example.com", Message: "merhaba"}
	second := models.Message{ID: "2", Name: "Ayşe", Email: "ayse@example.com", Message: "selam"}

	if err := repo.Prepend(ctx, first); err != nil {
		t.Fatalf("prepend failed: %v", err)
	}
	if err := repo.Prepend(ctx, second); err != nil {
		t.Fatalf("prepend failed: %v", err)
	}

	messages, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].ID != "2" {
		t.Errorf("expected newest message first, got id %s", messages[0].ID)
	}

	if err := repo.DeleteByID(ctx, "1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	messages, _ = repo.List(ctx)
	if len(messages) != 1 || messages[0].ID != "2" {
		t.Errorf("expected only message 2 to remain, got %v", messages)
	}

	// Olmayan id silmek hata değildir.
	if err := repo.DeleteByID(ctx, "missing"); err != nil {
		t.Errorf("deleting missing id should not error, got %v", err)
	}
}
