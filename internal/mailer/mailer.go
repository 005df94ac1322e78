package mailer

import (
	"io"
	"log"

	"garage-backend/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer delivers HTML email, optionally with a single attachment.
// Send never returns an error: transport failures are logged and
// reported as false so callers can flag the outcome without rolling
// back any state.
type Mailer struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

func (m *Mailer) Send(to, subject, htmlBody string, attachment []byte, filename string) bool {
	if m.cfg.SMTPUsername == "" {
		log.Println("Email not sent: SMTP is not configured")
		return false
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SMTPUsername)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if len(attachment) > 0 && filename != "" {
		msg.Attach(filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	dialer := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUsername, m.cfg.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		log.Printf("Email to %s failed: %v", to, err)
		return false
	}
	return true
}
