package mailer

import (
	"fmt"

	"github.com/liftlink/backend/internal/config"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email over SMTP. When the SMTP host is
// left unconfigured it runs in disabled mode: messages are logged
// instead of sent, which keeps local development working without a
// mail account.
type Mailer struct {
	dialer  *gomail.Dialer
	from    string
	enabled bool
	log     zerolog.Logger
}

func New(cfg config.SMTPConfig, log zerolog.Logger) *Mailer {
	m := &Mailer{from: cfg.From, log: log}
	if cfg.Host == "" {
		log.Info().Msg("smtp not configured, email delivery disabled")
		return m
	}
	m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	m.enabled = true
	return m
}

func (m *Mailer) SendVerificationEmail(to, code string) error {
	subject := "Verify your LiftLink account"
	body := fmt.Sprintf(
		"<p>Welcome to LiftLink!</p><p>Your verification code is <b>%s</b>.</p>"+
			"<p>Enter it in the app to activate your account.</p>", code)
	return m.send(to, subject, body)
}

// SendInterestNotification tells a user about activity on an interest
// request. kind is "new", "accepted", or "rejected".
func (m *Mailer) SendInterestNotification(to, senderName, kind string, sessionTitle *string) error {
	var subject, body string
	switch kind {
	case "new":
		subject = "Someone wants to work out with you"
		if sessionTitle != nil {
			body = fmt.Sprintf("<p><b>%s</b> is interested in your session \"%s\".</p>", senderName, *sessionTitle)
		} else {
			body = fmt.Sprintf("<p><b>%s</b> sent you a gym buddy request.</p>", senderName)
		}
	case "accepted":
		subject = "Your gym buddy request was accepted"
		body = "<p>Good news! Your request was accepted. Open LiftLink to see their contact details.</p>"
	default:
		subject = "Update on your gym buddy request"
		body = "<p>Your request was declined this time. Keep looking, your gym buddy is out there.</p>"
	}
	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	if !m.enabled {
		m.log.Info().Str("to", to).Str("subject", subject).Msg("email delivery disabled, dropping message")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
