package mailer

import "fmt"

// ConfirmationEmail carrega os campos estruturados do e-mail de
// confirmação de agendamento.
type ConfirmationEmail struct {
	To          string
	Date        string
	Time        string
	ServiceName string
	BarberName  string
	ConfirmURL  string
	ExpiresText string
}

func (e ConfirmationEmail) Message() Message {
	body := fmt.Sprintf(
		"Olá!\n\n"+
			"Recebemos seu pedido de agendamento:\n\n"+
			"  Serviço:  %s\n"+
			"  Barbeiro: %s\n"+
			"  Data:     %s às %s\n\n"+
			"Confirme pelo link abaixo:\n%s\n\n"+
			"O link expira %s. Depois disso será necessário agendar novamente.\n",
		e.ServiceName,
		e.BarberName,
		e.Date,
		e.Time,
		e.ConfirmURL,
		e.ExpiresText,
	)

	return Message{
		To:      e.To,
		Subject: "Confirme seu agendamento",
		Body:    body,
	}
}
