package notification

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
}

func NewEmailService(email, password string) *EmailService {
	d := gomail.NewDialer("smtp.gmail.com", 587, email, password)
	return &EmailService{dialer: d}
}

// SendWinEmail notifies a participant that they won a prize.
func (e *EmailService) SendWinEmail(to, name, prizeTitle string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", e.dialer.Username)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Félicitations ! Vous avez gagné : %s", prizeTitle))
	m.SetBody("text/html", winTemplate(name, prizeTitle))
	return e.dialer.DialAndSend(m)
}
