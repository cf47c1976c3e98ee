package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendVerificationEmail mengirim kode verifikasi ke email user (async).
// Gagal kirim hanya dicatat di log, tidak menggagalkan request.
func SendVerificationEmail(to string, code string) {
	go func() {
		host := os.Getenv("SMTP_HOST")
		if host == "" {
			InfoLogger.Printf("SMTP not configured, skipping verification mail for %s", to)
			return
		}
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Verify Your Email")
		m.SetBody("text/html", fmt.Sprintf(
			"<p>Hello %s,</p><p>Please verify your account with this code:</p><h2>%s</h2>", to, code))

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			ErrorLogger.Printf("failed to send verification mail to %s: %v", to, err)
		}
	}()
}
