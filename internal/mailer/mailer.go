package mailer

import (
	"fmt"

	"jagakampung-backend/config"

	"gopkg.in/gomail.v2"
)

// Mailer mengirim salinan email untuk notifikasi. Opsional: jika SMTP_HOST
// tidak diset, NewFromEnv mengembalikan nil dan pemanggil melewatkan email.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewFromEnv() *Mailer {
	host := config.GetEnv("SMTP_HOST", "")
	if host == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(
			host,
			config.GetEnvAsInt("SMTP_PORT", 587),
			config.GetEnv("SMTP_USER", ""),
			config.GetEnv("SMTP_PASS", ""),
		),
		from: config.GetEnv("SMTP_FROM", "noreply@jagakampung.id"),
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		fmt.Println("Gagal mengirim email notifikasi:", err)
		return err
	}
	return nil
}
