package utils

import (
	"bytes"
	"html/template"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// BookingEmailData feeds the confirmation / cancellation templates.
type BookingEmailData struct {
	BookingCode   string
	MovieTitle    string
	TheaterName   string
	Showtime      string
	Seats         string
	AmountPaid    float64
	PaymentMethod string
	PointsEarned  int

	RefundAmount  float64
	RefundPercent float64
	CancelledAt   string
}

func smtpDialer() *gomail.Dialer {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
}

// SendBookingConfirmationEmail sends the confirmation mail with the booking
// QR embedded. Async so the booking response is not delayed.
func SendBookingConfirmationEmail(to string, data BookingEmailData) {
	go func() {
		tmpl, err := template.ParseFiles("templates/booking_confirmation.html")
		if err != nil {
			log.Printf("email: load confirmation template: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("email: render confirmation template: %v", err)
			return
		}

		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Booking confirmed #"+data.BookingCode)
		m.SetBody("text/html", body.String())

		if qrBytes, err := GenerateQRCode(data.BookingCode, 400); err == nil {
			m.Embed("qr_booking.png", gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(qrBytes)
				return err
			}), gomail.SetHeader(map[string][]string{
				"Content-Type":        {"image/png"},
				"Content-ID":          {"<qr_booking_code>"},
				"Content-Disposition": {"inline"},
			}))
		}

		if err := smtpDialer().DialAndSend(m); err != nil {
			log.Printf("email: send confirmation to %s: %v", to, err)
		}
	}()
}

// SendBookingCancellationEmail notifies the user about the cancellation and
// the refund amount.
func SendBookingCancellationEmail(to string, data BookingEmailData) {
	go func() {
		tmpl, err := template.ParseFiles("templates/booking_cancelled.html")
		if err != nil {
			log.Printf("email: load cancellation template: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("email: render cancellation template: %v", err)
			return
		}

		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Booking cancelled #"+data.BookingCode)
		m.SetBody("text/html", body.String())

		if err := smtpDialer().DialAndSend(m); err != nil {
			log.Printf("email: send cancellation to %s: %v", to, err)
		}
	}()
}
