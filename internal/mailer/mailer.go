// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mailer delivers the contact and pre-registration form emails to the
// studio admin over SMTP or Amazon SES.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/shootingzone/studio-cms/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Sender names shown in the From header.
const (
	ContactSenderName     = "Shooting Zone Contact Form"
	PreRegisterSenderName = "Shooting Zone"
)

// ErrNotConfigured is returned when no transport or recipient is configured.
var ErrNotConfigured = errors.New("mail delivery is not configured")

// Message is a single HTML email.
type Message struct {
	FromName string
	From     string
	To       []string
	ReplyTo  string
	Subject  string
	HTMLBody string
}

// Sender delivers a message through one transport.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Mailer renders form submissions and hands them to a Sender.
type Mailer struct {
	sender Sender
	from   string
	to     string

	// Now stamps the received time shown in the email body.
	Now func() time.Time
}

// New creates a Mailer. A nil sender or empty recipient makes every send
// fail with ErrNotConfigured.
func New(sender Sender, from, adminEmail string) *Mailer {
	return &Mailer{
		sender: sender,
		from:   from,
		to:     adminEmail,
		Now:    time.Now,
	}
}

// NewFromConfig selects the transport named by MAIL_TRANSPORT.
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Mailer, error) {
	var (
		sender Sender
		from   = cfg.SMTP.User
	)

	switch cfg.MailTransport {
	case config.MailTransportSES:
		if cfg.SES.From != "" {
			from = cfg.SES.From
		}
		ses, err := NewSES(ctx, cfg.SES)
		if err != nil {
			return nil, err
		}
		sender = ses
	default:
		if cfg.SMTP.Host != "" {
			sender = NewSMTP(cfg.SMTP)
		}
	}

	if sender == nil || cfg.AdminEmail == "" {
		slog.Warn("form email delivery disabled", "transport", cfg.MailTransport)
	}
	return New(sender, from, cfg.AdminEmail), nil
}

// Enabled reports whether messages can be delivered.
func (m *Mailer) Enabled() bool {
	return m.sender != nil && m.to != "" && m.from != ""
}

func (m *Mailer) send(ctx context.Context, fromName, replyTo, subject, tmpl string, data any) error {
	if !m.Enabled() {
		return ErrNotConfigured
	}

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, tmpl, data); err != nil {
		return fmt.Errorf("rendering %s: %w", tmpl, err)
	}

	return m.sender.Send(ctx, Message{
		FromName: fromName,
		From:     m.from,
		To:       []string{m.to},
		ReplyTo:  replyTo,
		Subject:  subject,
		HTMLBody: body.String(),
	})
}

// ContactForm is a message submitted through the contact page.
type ContactForm struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// SendContact emails a contact form submission to the admin.
func (m *Mailer) SendContact(ctx context.Context, form ContactForm) error {
	data := struct {
		ContactForm
		ReceivedAt time.Time
	}{form, m.Now()}

	return m.send(ctx, ContactSenderName, form.Email,
		"New Contact Message: "+form.Subject, "contact.html", data)
}

// PreRegistrationForm is a booking enquiry from the pre-registration page.
type PreRegistrationForm struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required"`
	PhotoshootType  string `json:"photoshootType"`
	PreferredDate   string `json:"preferredDate"`
	PreferredTime   string `json:"preferredTime"`
	Participants    Text   `json:"participants"`
	LocationType    string `json:"locationType"`
	SpecialRequests string `json:"specialRequests"`
}

// SendPreRegistration emails a pre-registration to the admin.
func (m *Mailer) SendPreRegistration(ctx context.Context, form PreRegistrationForm) error {
	data := struct {
		PreRegistrationForm
		ReceivedAt time.Time
	}{form, m.Now()}

	return m.send(ctx, PreRegisterSenderName, form.Email,
		"New Pre-Registration from "+form.FirstName, "preregister.html", data)
}

// Text is a form value that may arrive as a JSON string or number.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*t = Text(n.String())
	return nil
}
