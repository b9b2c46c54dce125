// Package email, uygulama genelinde email gönderimi için soyutlama katmanı sağlar.
//
// EmailSender interface'i ile gönderim detayları soyutlanır.
// Şu anki implementasyon Resend API kullanır. Farklı bir sağlayıcıya geçmek
// için yeni bir implementasyon yazıp constructor'da değiştirmek yeterli.
package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
// Domain servisi bu interface'e bağımlıdır, concrete Resend implementasyonuna değil.
type EmailSender interface {
	// SendDomainAlert, domain süresi/durumu hakkında uyarı emaili gönderir.
	// status "available" ise domain boşa düşmüş demektir; aksi halde
	// daysRemaining'e göre aciliyet belirlenir. Eşiklerin dışındaysa
	// (>30 gün) hiçbir şey gönderilmez.
	SendDomainAlert(ctx context.Context, domain, status string, daysRemaining int) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string // Gönderici adresi (ör: noreply@kaankoc.net)
	toEmail   string // Alert alıcısı
}

// NewResendSender, Resend API client'ı ile yeni bir EmailSender oluşturur.
//
// apiKey: Resend dashboard'dan alınan API key (re_xxxxxxxx formatında).
// fromEmail: Resend'de doğrulanmış domain altında olmalı.
// toEmail: uyarıların gideceği adres.
func NewResendSender(apiKey, fromEmail, toEmail string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		toEmail:   toEmail,
	}
}

// SendDomainAlert, aciliyet seviyesine göre konu ve içerik seçip gönderir.
//
// Eşikler:
//   - available        → "boşa düştü", en acil durum
//   - daysRemaining ≤ 7  → acil yenileme uyarısı
//   - daysRemaining ≤ 30 → erken hatırlatma
//   - aksi halde gönderim yok
func (s *resendSender) SendDomainAlert(ctx context.Context, domain, status string, daysRemaining int) error {
	var subject, message string

	switch {
	case status == "available":
		subject = fmt.Sprintf("🚨 ACİL: %s Domain Boşa Düştü!", domain)
		message = fmt.Sprintf(`
			<h2 style="color: #dc2626;">⚠️ Domain Boşa Düştü!</h2>
			<p><strong>Domain:</strong> %s</p>
			<p><strong>Durum:</strong> Artık kullanılabilir</p>
			<p>Domain'iniz sona ermiş ve başkaları tarafından alınabilir durumda. Hemen yenileyin!</p>
		`, domain)
	case daysRemaining <= 7:
		subject = fmt.Sprintf("🚨 ACİL: %s - %d Gün Kaldı!", domain, daysRemaining)
		message = fmt.Sprintf(`
			<h2 style="color: #dc2626;">⚠️ Domain Süresi Bitiyor!</h2>
			<p><strong>Domain:</strong> %s</p>
			<p><strong>Kalan Süre:</strong> %d gün</p>
			<p style="color: #dc2626; font-weight: bold;">ACİL: Domain'inizi hemen yenileyin!</p>
		`, domain, daysRemaining)
	case daysRemaining <= 30:
		subject = fmt.Sprintf("⚠️ Uyarı: %s - %d Gün Kaldı", domain, daysRemaining)
		message = fmt.Sprintf(`
			<h2 style="color: #f59e0b;">⏰ Domain Yenilemesi Yaklaşıyor</h2>
			<p><strong>Domain:</strong> %s</p>
			<p><strong>Kalan Süre:</strong> %d gün</p>
			<p>Domain'inizi yakında yenilemeyi unutmayın.</p>
		`, domain, daysRemaining)
	default:
		return nil
	}

	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e5e7eb; border-radius: 8px;">
			%s
			<hr style="margin: 20px 0; border: none; border-top: 1px solid #e5e7eb;">
			<p style="color: #6b7280; font-size: 12px;">
				Otomatik Domain İzleme Sistemi - kaankoc.net
			</p>
		</div>
	`, message)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Domain Monitor <%s>", s.fromEmail),
		To:      []string{s.toEmail},
		Subject: subject,
		Html:    html,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send domain alert for %s: %w", domain, err)
	}

	return nil
}
