package mailer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"portfolio/api/config"
	"portfolio/api/models"
)

var ErrNotConfigured = errors.New("SMTP not configured in environment")

// SMTPMailer relays contact form messages to the site owner.
type SMTPMailer struct {
	lg  zerolog.Logger
	cfg config.SMTPConfig
	to  string
}

func NewSMTPMailer(cfg config.SMTPConfig, to string, lg zerolog.Logger) *SMTPMailer {
	if cfg.From == "" && cfg.Username != "" {
		cfg.From = fmt.Sprintf("Portfolio <%s>", cfg.Username)
	}
	if to == "" {
		to = cfg.Username
	}
	return &SMTPMailer{
		lg:  lg.With().Str("component", "smtp_mailer").Logger(),
		cfg: cfg,
		to:  to,
	}
}

func (m *SMTPMailer) SendContact(ctx context.Context, msg models.ContactMessage) error {
	if !m.cfg.Enabled() {
		return ErrNotConfigured
	}
	if m.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.Timeout)
		defer cancel()
	}

	mm := mail.NewMsg()
	if err := mm.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := mm.To(m.to); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	if err := mm.ReplyTo(msg.Email); err != nil {
		m.lg.Warn().Err(err).Str("reply_to", msg.Email).Msg("dropping invalid reply-to")
	}
	mm.Subject("Portfolio Contact")
	mm.SetBodyString(mail.TypeTextPlain, renderContactText(msg))
	mm.AddAlternativeString(mail.TypeTextHTML, renderContactHTML(msg))

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	}
	if m.cfg.Secure {
		opts = append(opts, mail.WithSSLPort(false))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	c, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client init failed: %w", err)
	}

	if err := c.DialAndSendWithContext(ctx, mm); err != nil {
		m.lg.Error().Err(err).Str("host", m.cfg.Host).Msg("smtp send failed")
		return fmt.Errorf("smtp send failed: %w", err)
	}

	m.lg.Info().Int64("message_id", msg.ID).Msg("contact message relayed")
	return nil
}

func renderContactText(msg models.ContactMessage) string {
	return fmt.Sprintf("Mail from portfolio contact form\n\nName: %s\nEmail: %s\n\n%s\n", msg.Name, msg.Email, msg.Message)
}

func renderContactHTML(msg models.ContactMessage) string {
	body := strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br/>")
	return `<h2>Mail from portfolio contact form</h2>
<p><strong>Name:</strong> ` + html.EscapeString(msg.Name) + `</p>
<p><strong>Email:</strong> ` + html.EscapeString(msg.Email) + `</p>
<p>` + body + `</p>`
}
