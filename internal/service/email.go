package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"silent-library-backend/internal/config"
	"silent-library-backend/internal/logger"
)

type sendgridEmailService struct {
	apiKey   string
	from     string
	fromName string
}

func NewEmailService(cfg config.EmailConfig) EmailService {
	return &sendgridEmailService{
		apiKey:   cfg.APIKey,
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

func (s *sendgridEmailService) send(to, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail("", to)

	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

const registrationSubject = "Successful Registration on Silent Library"

func registrationBody(firstName string) string {
	return fmt.Sprintf("Dear %s,\n\nThank you for registering on our platform. We are excited to have you as a member.\n\nThank you.\nSilent Library Team", firstName)
}

func (s *sendgridEmailService) SendRegistrationConfirmation(ctx context.Context, to, firstName string) error {
	if err := s.send(to, registrationSubject, registrationBody(firstName)); err != nil {
		logger.Warn("registration email failed", "to", to, "error", err)
		return err
	}
	return nil
}

func (s *sendgridEmailService) SendPasswordReset(ctx context.Context, to, firstName, token string) error {
	subject := "Password Reset Request"
	body := fmt.Sprintf("Dear %s,\n\nUse the token below to reset your password. It expires in 24 hours.\n\n%s\n\nIf you did not request a reset, ignore this message.\n\nThe Library Team", firstName, token)
	return s.send(to, subject, body)
}

func (s *sendgridEmailService) SendOverdueNotice(ctx context.Context, to, subject, body string) error {
	return s.send(to, subject, body)
}
