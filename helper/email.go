package helper

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"os"
	"time"

	"exhibition_manager/database"
	"exhibition_manager/model"
	"exhibition_manager/utils"

	"gopkg.in/gomail.v2"
)

type RegistrationEmailData struct {
	FullName        string
	ExhibitionTitle string
	DateRange       string
	LocationLine    string
	TicketCount     int
	Token           string
}

// SendRegistrationEmail sends the confirmation mail with the QR ticket
// attached. Fails fast when SMTP is not configured.
func SendRegistrationEmail(to string, data RegistrationEmailData) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" || to == "" {
		return errors.New("smtp not configured")
	}

	tmpl, err := template.ParseFiles("templates/registration_confirmation.html")
	if err != nil {
		return err
	}

	var htmlBody bytes.Buffer
	if err := tmpl.Execute(&htmlBody, data); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your tickets for "+data.ExhibitionTitle)
	m.SetBody("text/html", htmlBody.String())

	qrBytes, err := utils.GenerateQRCode(data.Token, 256)
	if err != nil {
		return err
	}
	filename := fmt.Sprintf("Ticket_%s.png", data.Token)
	m.Attach(filename, gomail.Rename(filename), gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := io.Copy(w, bytes.NewReader(qrBytes))
		return err
	}))

	d := gomail.NewDialer(host, 587, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	return d.DialAndSend(m)
}

// SendRegistrationEmailAsync fires the confirmation off in the background
// and records the send on the registration once it went out.
func SendRegistrationEmailAsync(registrationId uint, to string, data RegistrationEmailData) {
	go func() {
		if err := SendRegistrationEmail(to, data); err != nil {
			log.Printf("registration %d: confirmation email not sent: %v", registrationId, err)
			return
		}
		now := time.Now()
		if err := database.DB.Model(&model.Registration{}).
			Where("id = ?", registrationId).
			Updates(map[string]interface{}{"email_sent": true, "email_sent_at": now}).Error; err != nil {
			log.Printf("registration %d: failed to record email send: %v", registrationId, err)
		}
	}()
}
