// Package models, domain kayıtlarının Go karşılıklarını barındırır.
//
// İçerik koleksiyonları (projects, experience, education, certificates)
// store'da tek bir JSON array olarak yaşar ve server-side shape doğrulaması
// YAPILMAZ — admin client kaydın bütünlüğünden sorumludur. Buradaki tipler
// kayıt şemasının dokümantasyonu ve testlerin yapı taşıdır; repository
// katmanı kayıtları raw JSON olarak taşır.
package models

// LocalizedText, kullanıcıya görünen metinlerin tr/en çiftidir.
type LocalizedText struct {
	TR string `json:"tr"`
	EN string `json:"en"`
}

// Project, portfolio proje kaydı.
// ID client tarafında üretilir (timestamp bazlı string).
// Sıralama client'ta Order alanına göre yapılır — koleksiyon sırasız saklanır.
type Project struct {
	ID           string        `json:"id"`
	Title        LocalizedText `json:"title"`
	Description  LocalizedText `json:"description"`
	Image        string        `json:"image,omitempty"`
	Technologies []string      `json:"technologies,omitempty"`
	GithubURL    string        `json:"githubUrl,omitempty"`
	DemoURL      string        `json:"demoUrl,omitempty"`
	Featured     bool          `json:"featured"`
	Order        int           `json:"order"`
}

// Experience, iş deneyimi kaydı. Client StartDate'e göre sıralar.
type Experience struct {
	ID          string        `json:"id"`
	Company     string        `json:"company"`
	Position    LocalizedText `json:"position"`
	Location    string        `json:"location,omitempty"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate,omitempty"`
	Current     bool          `json:"current"`
	Description LocalizedText `json:"description"`
}

// Education, eğitim kaydı.
type Education struct {
	ID          string        `json:"id"`
	Institution string        `json:"institution"`
	Degree      LocalizedText `json:"degree"`
	Field       LocalizedText `json:"field"`
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate,omitempty"`
	Description LocalizedText `json:"description,omitempty"`
}

// Certificate, sertifika kaydı.
type Certificate struct {
	ID            string        `json:"id"`
	Name          LocalizedText `json:"name"`
	Issuer        string        `json:"issuer"`
	IssueDate     string        `json:"issueDate"`
	CredentialURL string        `json:"credentialUrl,omitempty"`
	Logo          string        `json:"logo,omitempty"`
	Order         int           `json:"order"`
}
