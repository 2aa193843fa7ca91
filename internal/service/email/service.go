package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type Service interface {
	SendDeadlineWarning(ctx context.Context, toEmail, recipientName, requestTitle, message string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

type deadlineData struct {
	Title        string
	Name         string
	RequestTitle string
	Message      string
	Link         string
}

func render(name string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	html, err := render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Graphic Requests <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendDeadlineWarning(ctx context.Context, toEmail, recipientName, requestTitle, message string) error {
	data := deadlineData{
		Title:        "هشدار مهلت تحویل",
		Name:         recipientName,
		RequestTitle: requestTitle,
		Message:      message,
		Link:         fmt.Sprintf("https://%s/requests", s.config.Domain),
	}
	return s.sendEmail(toEmail, "هشدار مهلت تحویل - "+requestTitle, "deadline_warning.html", data)
}
