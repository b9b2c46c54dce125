package models

// DomainStatus, bir domain'in RDAP/DNS sorgusundan çıkan durum özeti.
// Source alanı hangi kaynaktan geldiğini söyler: "RDAP", "DNS Fallback", "Error".
type DomainStatus struct {
	Domain           string   `json:"domain"`
	Status           string   `json:"status"` // active | expired | available | unknown | error
	ExpirationDate   string   `json:"expirationDate,omitempty"`
	RegistrationDate string   `json:"registrationDate,omitempty"`
	LastUpdate       string   `json:"lastUpdate,omitempty"`
	Registrar        string   `json:"registrar,omitempty"`
	DaysRemaining    *int     `json:"daysRemaining"`
	Nameservers      []string `json:"nameservers,omitempty"`
	StatusCodes      []string `json:"statusCodes,omitempty"`
	LastChecked      string   `json:"lastChecked"`
	Source           string   `json:"source"`
	Error            string   `json:"error,omitempty"`
}
