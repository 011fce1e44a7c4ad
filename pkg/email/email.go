// Package email, uygulama genelinde email gönderimi için soyutlama katmanı sağlar.
//
// EmailSender interface'i ile email gönderim detayları soyutlanır (Dependency Inversion).
// Şu anki implementasyon Resend API kullanır. İleride farklı bir sağlayıcıya
// geçmek için sadece yeni bir implementasyon yazıp constructor'da değiştirmek yeterli.
//
// Bu paket dışarıya iki şey sunar:
// 1. EmailSender interface — service'ler buna bağımlı olur
// 2. NewResendSender constructor — main.go'da wire-up için
package email

import (
	"context"
	"fmt"
	"html"

	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
// Service katmanı bu interface'e bağımlıdır, concrete Resend implementasyonuna değil.
type EmailSender interface {
	// SendGroupInvite, alıcıya grup davet kodu içeren email gönderir.
	// inviteCode XXX-XXX display formatında verilmelidir; inviterName
	// daveti gönderen üyenin görünen adıdır.
	SendGroupInvite(ctx context.Context, toEmail, groupName, inviteCode, inviterName string) error
}

// resendSender, Resend API ile email gönderen EmailSender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string // Gönderici adresi (ör: noreply@fitcircle.app)
	appURL    string // Uygulamanın public URL'i (ör: https://app.fitcircle.app)
}

// NewResendSender, Resend API client'ı ile yeni bir EmailSender oluşturur.
//
// apiKey: Resend dashboard'dan alınan API key (re_xxxxxxxx formatında).
// fromEmail: Gönderici email adresi — Resend'de doğrulanmış domain altında olmalı.
// appURL: Uygulamanın public URL'i — join link'lerinde kullanılır.
func NewResendSender(apiKey, fromEmail, appURL string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		appURL:    appURL,
	}
}

// SendGroupInvite, grup daveti email'i gönderir.
//
// Email içeriği:
// - Subject: "{inviterName} invited you to {groupName} — fitcircle"
// - Body: Davet kodu + join linki içeren basit HTML
// - Link format: {appURL}/join?code={code}
//
// Kod email'de XXX-XXX formatında görünür; link'te tiresiz gönderilir
// (backend her iki formu da kabul eder ama URL temiz kalsın).
func (s *resendSender) SendGroupInvite(ctx context.Context, toEmail, groupName, inviteCode, inviterName string) error {
	joinLink := fmt.Sprintf("%s/join?code=%s", s.appURL, inviteCode)

	safeGroup := html.EscapeString(groupName)
	safeInviter := html.EscapeString(inviterName)

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;background-color:#f0fdf4;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color:#f0fdf4;padding:40px 0;">
    <tr>
      <td align="center">
        <table width="480" cellpadding="0" cellspacing="0" style="background-color:#ffffff;border-radius:8px;padding:40px;">
          <tr>
            <td>
              <h1 style="color:#166534;font-size:24px;margin:0 0 8px 0;">fitcircle</h1>
              <h2 style="color:#1e293b;font-size:18px;margin:0 0 24px 0;">You're invited to join %s</h2>
              <p style="color:#475569;font-size:15px;line-height:1.6;margin:0 0 24px 0;">
                %s invited you to their accountability group. Use the invite code below or click the button to join.
              </p>
              <p style="color:#166534;font-size:28px;font-weight:700;letter-spacing:4px;margin:0 0 24px 0;">%s</p>
              <table cellpadding="0" cellspacing="0" style="margin:0 0 24px 0;">
                <tr>
                  <td style="background-color:#16a34a;border-radius:6px;padding:12px 32px;">
                    <a href="%s" style="color:#ffffff;text-decoration:none;font-size:15px;font-weight:600;">
                      Join Group
                    </a>
                  </td>
                </tr>
              </table>
              <p style="color:#64748b;font-size:13px;line-height:1.6;margin:0;word-break:break-all;">
                If the button doesn't work, copy and paste this link:<br>
                <a href="%s" style="color:#16a34a;">%s</a>
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, safeGroup, safeInviter, inviteCode, joinLink, joinLink, joinLink)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("fitcircle <%s>", s.fromEmail),
		To:      []string{toEmail},
		Subject: fmt.Sprintf("%s invited you to %s — fitcircle", inviterName, groupName),
		Html:    body,
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send group invite email: %w", err)
	}

	return nil
}
