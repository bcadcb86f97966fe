package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

// Mailer delivers outbound email. Delivery failures propagate to the
// caller; nothing is queued or retried here.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer sends mail through an SMTP relay using go-mail.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
}

func NewSMTPMailer(host string, port int, username, password, from, fromName string) (*SMTPMailer, error) {
	if host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if from == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
	}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	if m.fromName != "" {
		if err := msg.FromFormat(m.fromName, m.from); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(m.from); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	opts := []mail.Option{
		mail.WithPort(m.port),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if m.port == 465 {
		opts = append(opts, mail.WithSSL())
	}
	if m.username != "" && m.password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.username),
			mail.WithPassword(m.password),
		)
	}

	client, err := mail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}

// BuildRecoveryEmail renders the password recovery message around the reset
// link carrying the raw token.
func BuildRecoveryEmail(nombres, apellidos, resetLink string, expiresMinutes int) (subject, html string) {
	subject = "Recuperacion Kando PIAR"
	html = fmt.Sprintf(`
        <div style="font-family:Arial,sans-serif;line-height:1.5;color:#222;max-width:600px;margin:0 auto;">
          <h2 style="color:#2b5797;">Recuperación de contraseña</h2>
          <p>Hola %s %s,</p>
          <p>Hemos recibido una solicitud para restablecer tu contraseña. Si no fuiste tú, puedes ignorar este mensaje.</p>
          <p style="margin:24px 0;">
            <a href="%s" style="background:#2b5797;color:#fff;padding:12px 20px;text-decoration:none;border-radius:6px;display:inline-block;">Restablecer contraseña</a>
          </p>
          <p>O copia y pega este enlace en tu navegador:</p>
          <p style="word-break:break-all;font-size:13px;color:#555;">%s</p>
          <p style="font-size:12px;color:#777;">Este enlace expira en %d minutos.</p>
          <hr style="border:none;border-top:1px solid #ddd;margin:30px 0;" />
          <p style="font-size:11px;color:#777;">Si no solicitaste el cambio, te recomendamos revisar la seguridad de tu cuenta.</p>
        </div>`,
		nombres, apellidos, resetLink, resetLink, expiresMinutes)
	return subject, html
}
