package infra

import (
	"fmt"
	"net/smtp"

	"listacomparativa/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending purchase orders with PDF
// attachments.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	sender   string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		sender:   cfg.OrdenesSender,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendOrden mails a purchase-order PDF to the supplier contact address.
func (m *Mailer) SendOrden(to, subject, body, pdfPath string) error {
	e := email.NewEmail()
	e.From = m.sender
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if pdfPath != "" {
		if _, err := e.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
