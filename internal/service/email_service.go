package service

import (
	"context"
	"fmt"
	"html"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"familyaid/internal/logging"
)

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
	logger    logging.Logger
}

var _ Mailer = (*EmailService)(nil)

// NewEmailService creates a new email service. Without a sender address the
// service is disabled and skips every send.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName string, logger logging.Logger) (*EmailService, error) {
	if fromEmail == "" {
		logger.Info("Email service disabled: no sender address configured")
		return &EmailService{enabled: false, logger: logger}, nil
	}

	logger.Debug(fmt.Sprintf("Initializing email service: region=%s from=%s", awsRegion, fromEmail))

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Info(fmt.Sprintf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion))
	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
		logger:    logger,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendNotificationEmail mails an urgent notification to one user
func (s *EmailService) SendNotificationEmail(ctx context.Context, toEmail, toName, title, message string) error {
	if !s.enabled {
		s.logger.Debug("Skipping email send (service disabled): notification to " + toEmail)
		return nil
	}

	subject := "إشعار عاجل: " + title
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html dir="rtl" lang="ar">
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Tahoma, Arial, sans-serif; line-height: 1.8; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #c0392b; color: white; padding: 16px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 24px; border-radius: 0 0 5px 5px; white-space: pre-line; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header"><h1>%s</h1></div>
		<div class="content">
			<p>مرحبا %s،</p>
			<p>%s</p>
		</div>
		<div class="footer"><p>هذه رسالة آلية، يرجى عدم الرد عليها.</p></div>
	</div>
</body>
</html>
`, html.EscapeString(title), html.EscapeString(toName), html.EscapeString(message))

	textBody := fmt.Sprintf("مرحبا %s،\n\n%s\n\n%s\n\n---\nهذه رسالة آلية، يرجى عدم الرد عليها.\n", toName, title, message)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}
	if result.MessageId != nil {
		s.logger.Debug("SES message ID: " + *result.MessageId)
	}
	s.logger.Info(fmt.Sprintf("Email sent successfully: to=%s", toEmail))
	return nil
}
