package tools

import (
	"fmt"
	"net"
	"net/smtp"

	"github.com/jordan-wright/email"
)

var (
	smtpServerURL string
	auth          smtp.Auth
	fromWithName  string
)

// InitEmailConfig init audit alert email config
func InitEmailConfig(server string, port int, from, name, password string) {
	smtpServerURL = net.JoinHostPort(server, fmt.Sprintf("%d", port))
	auth = smtp.PlainAuth("", from, password, server)
	if name != "" {
		fromWithName = fmt.Sprintf("%s <%s>", name, from)
	} else {
		fromWithName = from
	}
}

// EmailEnabled returns true once InitEmailConfig has run
func EmailEnabled() bool {
	return smtpServerURL != ""
}

// SendEmail send a plain text alert mail
func SendEmail(to []string, subject, content string) error {
	e := email.NewEmail()
	e.From = fromWithName
	e.To = to
	e.Subject = subject
	e.Text = []byte(content)
	return e.Send(smtpServerURL, auth)
}
