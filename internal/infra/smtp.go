package infra

import (
	"fmt"
	"net/smtp"

	"saunapos/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer delivers the nightly closing report to the facility owner over
// plain SMTP with the PDF attached.
type Mailer struct {
	host string
	user string
	pass string
	addr string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host: cfg.SMTPHost,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPassword,
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// SendReport mails the closing summary. pdfPath may be empty when PDF
// generation failed upstream; the mail still goes out with the text body.
func (m *Mailer) SendReport(to, subject, body, pdfPath string) error {
	msg := email.NewEmail()
	msg.From = m.user
	msg.To = []string{to}
	msg.Subject = subject
	msg.Text = []byte(body)

	if pdfPath != "" {
		if _, err := msg.AttachFile(pdfPath); err != nil {
			return fmt.Errorf("mailer: attach report: %w", err)
		}
	}

	return msg.Send(m.addr, smtp.PlainAuth("", m.user, m.pass, m.host))
}
