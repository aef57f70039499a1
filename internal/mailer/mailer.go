package mailer

import (
	"log"
	"net/smtp"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(msg Message) error
}

// ===============================
// SMTP
// ===============================

type SMTPSender struct {
	host     string
	port     string
	from     string
	password string
}

func NewSMTPSender(host, port, from, password string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		from:     from,
		password: password,
	}
}

func (s *SMTPSender) Send(msg Message) error {
	payload := []byte(
		"From: " + s.from + "\r\n" +
			"To: " + msg.To + "\r\n" +
			"Subject: " + msg.Subject + "\r\n" +
			"\r\n" +
			msg.Body + "\r\n",
	)

	auth := smtp.PlainAuth("", s.from, s.password, s.host)
	return smtp.SendMail(s.host+":"+s.port, auth, s.from, []string{msg.To}, payload)
}

// ===============================
// Log-only (sem SMTP configurado)
// ===============================

type LogSender struct{}

func (LogSender) Send(msg Message) error {
	log.Printf("mailer (dry-run): to=%s subject=%q", msg.To, msg.Subject)
	return nil
}
