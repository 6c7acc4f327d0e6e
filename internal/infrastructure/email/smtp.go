package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // base URL for report links (e.g. "http://localhost:8080")
}

// NotificationService sends manager-facing notifications. Implementations
// may be no-ops when email delivery is disabled.
type NotificationService interface {
	SendDistressNotification(to, authorName, reportTitle string, reportID uint) error
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

// SendDistressNotification alerts a manager that a team member filed a
// report with the distress condition.
func (s *SMTPEmailService) SendDistressNotification(to, authorName, reportTitle string, reportID uint) error {
	reportURL := fmt.Sprintf("%s/api/v1/reports/%d", s.config.BaseURL, reportID)

	subject := fmt.Sprintf("Condition alert: %s may need a follow-up", authorName)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Condition Alert</h2>
			<p><strong>%s</strong> submitted a daily report with condition <strong>bad</strong>.</p>
			<p>Report: %s</p>
			<p><a href="%s">Open the report</a></p>
			<p>Please consider checking in with them.</p>
		</body>
		</html>
	`, authorName, reportTitle, reportURL)

	plainBody := fmt.Sprintf(`
Condition Alert

%s submitted a daily report with condition "bad".

Report: %s
%s

Please consider checking in with them.
	`, authorName, reportTitle, reportURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromAddress)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// NoopNotificationService is used when email delivery is disabled.
type NoopNotificationService struct{}

func (NoopNotificationService) SendDistressNotification(string, string, string, uint) error {
	return nil
}
