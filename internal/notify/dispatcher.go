package notify

import "log"

// Dispatcher envia notificações fora do caminho da requisição.
// Fila cheia descarta o evento: notificação é melhor-esforço e nunca
// derruba um booking já commitado.
type Dispatcher struct {
	sender Sender
	queue  chan Event
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		msg, ok := BuildMessage(ev)
		if !ok {
			continue
		}

		if err := d.sender.Send(msg); err != nil {
			log.Printf("notify error: kind=%s to=%s: %v", ev.Kind, msg.To, err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		log.Println("notify queue full, dropping event")
	}
}
