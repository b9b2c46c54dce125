package models

// LogEntry, admin güvenlik olaylarının append-only kaydı.
// Her entry 7 gün TTL ile ayrı bir key altında saklanır; okuma tarafı
// timestamp'e göre tersten sıralar (yazma sırasında sıra garantisi yoktur).
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	IP        string `json:"ip,omitempty"`
	Action    string `json:"action"`
	Version   string `json:"tokenVersion,omitempty"`
}

// Log action sabitleri.
const (
	ActionLoginSuccess        = "login_success"
	ActionLoginFailed         = "login_failed"
	ActionLoginBlocked        = "login_blocked"
	ActionPasswordChanged     = "password_changed"
	ActionSessionsInvalidated = "sessions_invalidated"
)
