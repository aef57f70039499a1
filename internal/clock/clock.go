package clock

import "time"

// Clock abstrai o relógio de parede. Toda comparação com "agora"
// (slot no passado, expiração de token, janela de rate limit)
// passa por aqui para manter os testes determinísticos.
type Clock interface {
	Now() time.Time
}

type Real struct {
	Loc *time.Location
}

func (r Real) Now() time.Time {
	if r.Loc != nil {
		return time.Now().In(r.Loc)
	}
	return time.Now()
}
