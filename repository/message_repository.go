package repository

import (
	"context"

	"github.com/kaankoc/portfolio/models"
)

// MessageRepository, iletişim formu mesajları için interface.
//
// Mesajlar da "messages" key'i altında tek array'dir ama içerik
// koleksiyonlarından farklı olarak server kayıt ÜRETİR (contact formu) ve
// SİLER (admin paneli) — bu yüzden raw JSON yerine typed erişim sunar.
// Prepend ve DeleteByID altta yine read-modify-write'tır; aynı yarış
// sınırlaması burada da geçerlidir.
type MessageRepository interface {
	List(ctx context.Context) ([]models.Message, error)

	// Prepend, mesajı array'in BAŞINA ekler — admin paneli en yeniyi üstte görür.
	Prepend(ctx context.Context, msg models.Message) error

	// DeleteByID, eşleşen id'yi filtreleyip kalanı geri yazar.
	// ID bulunamazsa hata dönmez — array değişmeden yazılır.
	DeleteByID(ctx context.Context, id string) error
}
