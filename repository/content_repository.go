// Package repository, key-value store üzerindeki veri erişim katmanıdır.
//
// Her içerik koleksiyonu store'da TEK bir key altında JSON array olarak yaşar.
// Okuma = fetch + parse; yazma = serialize + komple üzerine yazma.
// Kısmi güncelleme YOKTUR: silme/düzenleme isteyen taraf read-modify-write
// yapar. İki eşzamanlı yazıcı yarışırsa son yazan kazanır ve kaybedenin
// değişikliği sessizce gider — bilinen ve kabul edilmiş bir sınırlamadır
// (tek admin'li küçük koleksiyonlar için optimistic locking maliyetine
// değmez).
package repository

import (
	"context"
	"encoding/json"
)

// İçerik koleksiyonlarının store key'leri.
const (
	CollectionProjects     = "projects"
	CollectionExperience   = "experience"
	CollectionEducation    = "education"
	CollectionCertificates = "certificates"
	CollectionMessages     = "messages"
)

// ValidCollection, admin API'sinin kabul ettiği koleksiyon adlarını sınırlar.
// Key-value store'a keyfi key yazılmasını engeller.
func ValidCollection(name string) bool {
	switch name {
	case CollectionProjects, CollectionExperience, CollectionEducation, CollectionCertificates:
		return true
	}
	return false
}

// ContentRepository, isimli koleksiyonlar için whole-array erişim interface'i.
//
// Kayıtlar json.RawMessage olarak taşınır: server kayıt şemasını doğrulamaz,
// admin client ne gönderirse o saklanır. ID benzersizliği dahil her şey
// client'ın sorumluluğundadır.
type ContentRepository interface {
	// List, koleksiyonun tüm kayıtlarını döner.
	// Key yokluğu hata DEĞİLDİR — hiç yazılmamış koleksiyon boş array'dir.
	List(ctx context.Context, collection string) ([]json.RawMessage, error)

	// Replace, koleksiyonu verilen array ile komple değiştirir.
	Replace(ctx context.Context, collection string, records []json.RawMessage) error
}
