package schedule

import "time"

// DayWindow é o expediente resolvido para uma data: regra semanal
// aplicável + intervalo configurado entre slots.
type DayWindow struct {
	IsOpen          bool
	StartTime       string // "HH:MM" no relógio de parede da barbearia
	EndTime         string
	IntervalMinutes int
}

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Closed é o resultado de um dia fechado ou sem regra semanal.
func Closed() DayWindow {
	return DayWindow{IsOpen: false}
}

// BuildSlots gera a sequência ordenada de slots de uma data, da
// abertura ao fechamento INCLUSIVE, passo a passo pelo intervalo.
// Um slot está disponível se nenhum barbeiro o ocupa e se o instante
// não ficou no passado. Quando start == end, exatamente um slot sai.
func BuildSlots(
	day DayWindow,
	date time.Time,
	occupied map[string]bool,
	now time.Time,
) []Slot {

	if !day.IsOpen || day.IntervalMinutes <= 0 {
		return []Slot{}
	}

	loc := date.Location()

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), true
	}

	open, ok := parseHM(day.StartTime)
	if !ok {
		return []Slot{}
	}
	closing, ok := parseHM(day.EndTime)
	if !ok || closing.Before(open) {
		return []Slot{}
	}

	step := time.Duration(day.IntervalMinutes) * time.Minute

	slots := []Slot{}
	for cur := open; !cur.After(closing); cur = cur.Add(step) {
		hm := cur.Format("15:04")
		slots = append(slots, Slot{
			Time:      hm,
			Available: !occupied[hm] && !cur.Before(now),
		})
	}

	return slots
}
