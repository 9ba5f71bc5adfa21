package utils

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"os"
	"time"
)

// ======================
// SMTP Configuration
// ======================
var (
	smtpHost      = os.Getenv("SMTP_HOST")
	smtpPort      = os.Getenv("SMTP_PORT")
	smtpUsername  = os.Getenv("SMTP_USERNAME")
	smtpPassword  = os.Getenv("SMTP_PASSWORD")
	smtpFromName  = os.Getenv("SMTP_FROM_NAME")
	smtpFromEmail = os.Getenv("SMTP_FROM_EMAIL")
	smtpTimeout   = 10 * time.Second
)

func sendEmail(to, subject, body string) error {
	if smtpHost == "" || smtpUsername == "" || smtpPassword == "" {
		return fmt.Errorf("smtp not configured")
	}

	if smtpFromEmail == "" {
		smtpFromEmail = smtpUsername
	}

	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	// Dial plain, then upgrade with StartTLS; tls.Dial does not work with
	// servers that expect the upgrade handshake.
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         smtpHost,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", smtpUsername, smtpPassword, smtpHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := client.Mail(smtpFromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}

	from := smtpFromName
	if from == "" {
		from = smtpFromEmail
	} else {
		from = fmt.Sprintf("%s <%s>", smtpFromName, smtpFromEmail)
	}

	msg := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n%s", from, to, subject, body))

	if _, err = w.Write(msg); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	return client.Quit()
}

// SendRecoveryCode delivers a one-time account recovery code. A send
// failure must fail the whole recovery request, so the error propagates.
func SendRecoveryCode(toEmail, username, code string) error {
	subject := "Your account recovery code"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour account recovery code is: %s\n\nThe code expires in 10 minutes. If you did not request it, please ignore this email.",
		username, code,
	)
	return sendEmail(toEmail, subject, body)
}

// SendDonationReceiptEmail notifies a donor that their payment was received.
func SendDonationReceiptEmail(toEmail, donorName, receiptNo string, amount float64) error {
	subject := fmt.Sprintf("Donation receipt %s", receiptNo)
	body := fmt.Sprintf(
		"Hello %s,\n\nWe have received your donation of Rs %.2f.\nReceipt number: %s\n\nThank you for your contribution.",
		donorName, amount, receiptNo,
	)
	return sendEmail(toEmail, subject, body)
}

// SendApprovalEmail tells a member their registration was approved.
func SendApprovalEmail(toEmail, fullName string) {
	subject := "Your registration has been approved"
	body := fmt.Sprintf("Hello %s, your registration has been approved. You can now log in.", fullName)
	if err := sendEmail(toEmail, subject, body); err != nil {
		fmt.Printf("failed to send approval email to %s: %v\n", toEmail, err)
	}
}
