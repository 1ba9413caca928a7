package email

import (
	"context"
	"fmt"
	"net/smtp"

	"futsal-backend/pkg/logger"
)

type ResetPasswordData struct {
	Email     string
	UserName  string
	ResetLink string
	ExpiresIn string
}

type BookingConfirmationData struct {
	Email       string
	Name        string
	FieldName   string
	Date        string
	StartTime   string
	EndTime     string
	TotalAmount string
}

type EmailService interface {
	SendResetPasswordEmail(ctx context.Context, data ResetPasswordData) error
	SendBookingConfirmationEmail(ctx context.Context, data BookingConfirmationData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewDevEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendResetPasswordEmail(ctx context.Context, data ResetPasswordData) error {
	subject := "Reset Password - Futsal Booking System"
	body := fmt.Sprintf(`Hi %s,

We received a request to reset the password for your account.

Open the link below to choose a new password:
%s

The link is valid for %s. If you did not request a password reset,
you can safely ignore this email.`, data.UserName, data.ResetLink, data.ExpiresIn)

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) SendBookingConfirmationEmail(ctx context.Context, data BookingConfirmationData) error {
	subject := "Booking Received - Futsal Booking System"
	body := fmt.Sprintf(`Hi %s,

Your booking request has been received and is pending confirmation.

Field:  %s
Date:   %s
Time:   %s - %s
Total:  %s

You will receive another email once the booking is confirmed.`,
		data.Name, data.FieldName, data.Date, data.StartTime, data.EndTime, data.TotalAmount)

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, to, subject, body))

	err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{to}, msg)
	if err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        to,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
