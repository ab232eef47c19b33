package rental

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkornev/rental-bot/internal/domain/tariff"
)

// Request — разобранный запрос менеджера: дата, теплоход и 2 или 4
// временные метки. Четыре метки — {подготовка, посадка, высадка,
// разгрузка}, две — {посадка, высадка} без технических часов.
type Request struct {
	Date   time.Time
	Vessel string
	Marks  []time.Duration // смещения от полуночи
}

// Parse разбирает блок из трёх строк:
//
//	07.09.25
//	Антверпен
//	21:30-22:30-02:30-03:00
//
// Время допускает сокращение без минут («18» = «18:00»).
func Parse(lines []string) (Request, error) {
	if len(lines) != 3 {
		return Request{}, fmt.Errorf("некорректный формат запроса: нужно 3 строки (дата, теплоход, времена)")
	}

	date, err := time.Parse("02.01.06", strings.TrimSpace(lines[0]))
	if err != nil {
		return Request{}, fmt.Errorf("неверный формат даты %q, ожидается дд.мм.гг", lines[0])
	}

	vessel := strings.TrimSpace(lines[1])
	if vessel == "" {
		return Request{}, fmt.Errorf("не указано название теплохода")
	}

	parts := strings.Split(lines[2], "-")
	if len(parts) != 2 && len(parts) != 4 {
		return Request{}, fmt.Errorf("ожидается 2 или 4 временных значения, получено %d", len(parts))
	}
	marks := make([]time.Duration, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if !strings.Contains(p, ":") {
			p += ":00"
		}
		m, err := tariff.ParseClock(p)
		if err != nil {
			return Request{}, err
		}
		marks = append(marks, m)
	}

	return Request{Date: date, Vessel: vessel, Marks: marks}, nil
}

// Timeline раскладывает метки по календарю: каждая следующая метка,
// не оказавшаяся строго позже предыдущей, переносится на сутки вперёд
// (аренда через полночь). Возвращает абсолютные времена в порядке меток.
func (r Request) Timeline() []time.Time {
	out := make([]time.Time, 0, len(r.Marks))
	for i, m := range r.Marks {
		t := r.Date.Add(m)
		if i > 0 {
			for !t.After(out[i-1]) {
				t = t.AddDate(0, 0, 1)
			}
		}
		out = append(out, t)
	}
	return out
}
