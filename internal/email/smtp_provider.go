package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// SMTPProvider реализует Provider поверх gomail
type SMTPProvider struct {
	config *SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(config *SMTPConfig) *SMTPProvider {
	config.applyDefaults()
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	// 465 - implicit TLS; на 587 gomail сам делает STARTTLS
	dialer.SSL = config.UseTLS && config.Port == 465
	return &SMTPProvider{
		config: config,
		dialer: dialer,
	}
}

// Send отправляет email сообщение
func (p *SMTPProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}

	from := email.From
	if from == "" {
		from = p.config.FromEmail
	}

	m := gomail.NewMessage()
	if p.config.FromName != "" {
		m.SetAddressHeader("From", from, p.config.FromName)
	} else {
		m.SetHeader("From", from)
	}
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.HTMLBody != "" {
		m.SetBody("text/html", email.HTMLBody)
		if email.Body != "" {
			m.AddAlternative("text/plain", email.Body)
		}
	} else {
		m.SetBody("text/plain", email.Body)
	}

	return p.dialer.DialAndSend(m)
}

// SendPasswordReset отправляет письмо со ссылкой сброса пароля
func (p *SMTPProvider) SendPasswordReset(to string, resetURL string) error {
	body := fmt.Sprintf(
		"You are receiving this email because you (or someone else) has requested the reset of a password.\n\n"+
			"Please follow the link to set a new password:\n\n%s\n\n"+
			"The link is valid for 10 minutes. If you did not request this, ignore this email.",
		resetURL,
	)
	return p.Send(&Email{
		To:      []string{to},
		Subject: "Password Reset Request",
		Body:    body,
	})
}

// Validate проверяет конфигурацию SMTP
func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}

	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}

	return nil
}

// Close закрывает соединение (для SMTP обычно не требуется)
func (p *SMTPProvider) Close() error {
	return nil
}
