package mailer

import "log"

// Dispatcher desacopla o envio de e-mail da transação de reserva:
// o agendamento já está gravado quando a mensagem entra na fila, e
// falha de envio nunca desfaz nem bloqueia a reserva.
type Dispatcher struct {
	sender Sender
	queue  chan Message
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Message, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		if err := d.sender.Send(msg); err != nil {
			log.Println("mailer error:", err)
		}
	}
}

// Dispatch nunca bloqueia. Dispatcher nil desliga o envio.
func (d *Dispatcher) Dispatch(msg Message) {
	if d == nil {
		return
	}

	select {
	case d.queue <- msg:
		// enfileirado
	default:
		// fila cheia → descartamos o e-mail (nunca quebrar a reserva)
		log.Println("mailer queue full, dropping message")
	}
}
