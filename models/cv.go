package models

// CVFile, yüklenmiş bir CV dosyasının metadata'sı.
// Dosya içeriği backend'e göre ya diskte ya da store'da ayrı bir
// "file:<name>" key'i altında yaşar — metadata ile içerik koordine edilmez.
type CVFile struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	CreatedAt string `json:"createdAt"`
	Size      int64  `json:"size"`
}
