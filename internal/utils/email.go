package utils

import (
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"gehna-backend/internal/config"
)

// SendEmail delivers an HTML mail through the configured SMTP relay.
// Notification failures are the caller's problem to log, never to surface:
// an order stays created even when its confirmation mail bounces.
func SendEmail(to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	from := config.Getenv("SMTP_FROM", "noreply@gehna.store")
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	port, err := strconv.Atoi(config.Getenv("SMTP_PORT", "587"))
	if err != nil {
		port = 587
	}

	client, err := mail.NewClient(config.Getenv("SMTP_HOST", "smtp.gmail.com"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending email to", to)
	return client.DialAndSend(msg)
}

// SendEmailAsync fires the mail off on its own goroutine and only logs the
// outcome. Used by order/hamper creation and status updates.
func SendEmailAsync(to, subject, htmlBody string) {
	go func() {
		if err := SendEmail(to, subject, htmlBody); err != nil {
			log.Printf("❌ Email to %s failed: %v", to, err)
			return
		}
		log.Println("✅ Email sent to", to)
	}()
}
