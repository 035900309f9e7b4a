package email

// SMTPConfig содержит конфигурацию SMTP сервера
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
}

// applyDefaults подставляет стандартный submission-порт, если он не задан
func (c *SMTPConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = 587
	}
}
