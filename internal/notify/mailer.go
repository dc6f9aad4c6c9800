package notify

import (
	"log"

	"gopkg.in/gomail.v2"

	"github.com/AgendaVivaBR/salon-scheduler/internal/config"
)

// SMTPSender entrega mensagens via SMTP (gomail).
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPFrom,
	}
}

func (s *SMTPSender) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	return s.dialer.DialAndSend(m)
}

// LogSender é o fallback quando SMTP não está configurado:
// registra no log e finge sucesso, para ambientes de desenvolvimento.
type LogSender struct{}

func (LogSender) Send(msg Message) error {
	log.Printf("notify (smtp disabled): to=%s subject=%q", msg.To, msg.Subject)
	return nil
}
