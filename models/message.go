package models

import "strings"

// Message, iletişim formundan gelen ve admin panelinde listelenen mesaj kaydı.
// ID server tarafında üretilir (unix millisecond string), en yeni mesaj
// koleksiyonun başına eklenir.
type Message struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
	Read      bool   `json:"read"`
}

// ContactRequest, public POST /api/contact isteğinin body'si.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate, üç alanın da dolu olmasını ister.
// Email format doğrulaması yapılmaz — orijinal davranış korunur,
// yanlış yazılmış bir adres mesajın kaybolmasından iyidir.
func (r *ContactRequest) Validate() bool {
	return strings.TrimSpace(r.Name) != "" &&
		strings.TrimSpace(r.Email) != "" &&
		strings.TrimSpace(r.Message) != ""
}
