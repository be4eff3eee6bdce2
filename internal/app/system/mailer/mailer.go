// internal/app/system/mailer/mailer.go
package mailer

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Email is a composed outbound message.
type Email struct {
	To       string
	ToName   string
	Subject  string
	TextBody string
	HTMLBody string
}

// Result describes what happened to a delivered email. DraftID is always
// assigned; Sent is true only when SMTP delivery actually happened.
type Result struct {
	DraftID string
	Sent    bool
}

// Config holds SMTP settings and the delivery switch. When SendEnabled is
// false the mailer runs in draft mode: every email is logged and assigned
// a draft id, but nothing leaves the process.
type Config struct {
	Host        string
	Port        int
	User        string
	Password    string
	From        string
	FromName    string
	SendEnabled bool
}

// Mailer delivers composed emails, or records them as drafts when sending
// is disabled. HTML bodies are sanitized before delivery either way.
type Mailer struct {
	cfg    Config
	log    *zap.Logger
	policy *bluemonday.Policy
	dial   func(m *gomail.Message) error
}

func New(cfg Config, log *zap.Logger) *Mailer {
	m := &Mailer{
		cfg:    cfg,
		log:    log,
		policy: bluemonday.UGCPolicy(),
	}
	m.dial = func(msg *gomail.Message) error {
		d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
		return d.DialAndSend(msg)
	}
	return m
}

// SendEnabled reports whether the mailer delivers over SMTP or only drafts.
func (m *Mailer) SendEnabled() bool {
	return m.cfg.SendEnabled
}

// Deliver sends the email over SMTP when sending is enabled, and records
// it as a draft otherwise. The returned Result always carries a draft id
// so callers can reference the message either way.
func (m *Mailer) Deliver(e Email) (Result, error) {
	if e.To == "" {
		return Result{}, fmt.Errorf("deliver email: empty recipient")
	}
	if e.Subject == "" {
		return Result{}, fmt.Errorf("deliver email: empty subject")
	}

	e.HTMLBody = m.policy.Sanitize(e.HTMLBody)
	res := Result{DraftID: uuid.NewString()}

	if !m.cfg.SendEnabled {
		m.log.Info("email drafted (sending disabled)",
			zap.String("draft_id", res.DraftID),
			zap.String("to", e.To),
			zap.String("subject", e.Subject))
		return res, nil
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetAddressHeader("To", e.To, e.ToName)
	msg.SetHeader("Subject", e.Subject)
	msg.SetBody("text/plain", e.TextBody)
	if e.HTMLBody != "" {
		msg.AddAlternative("text/html", e.HTMLBody)
	}

	if err := m.dial(msg); err != nil {
		m.log.Error("smtp delivery failed",
			zap.String("draft_id", res.DraftID),
			zap.String("to", e.To),
			zap.Error(err))
		return Result{}, fmt.Errorf("send email: %w", err)
	}

	res.Sent = true
	m.log.Info("email sent",
		zap.String("draft_id", res.DraftID),
		zap.String("to", e.To),
		zap.String("subject", e.Subject))
	return res, nil
}
