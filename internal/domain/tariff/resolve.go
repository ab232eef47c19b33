package tariff

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
)

// ParseClock разбирает "HH:MM" (допускается "H:MM").
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("неверный формат времени: %q", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// parseTimeRange разбирает "10:00 - 18:00" в пару смещений от полуночи.
func parseTimeRange(s string) (start, end time.Duration, err error) {
	from, to, ok := strings.Cut(s, "-")
	if !ok {
		return 0, 0, fmt.Errorf("неверный формат временного диапазона: %q", s)
	}
	if start, err = ParseClock(from); err != nil {
		return 0, 0, err
	}
	if end, err = ParseClock(to); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Resolve собирает расписание тарифов теплохода на дату посадки:
// отбирает строки по имени, диапазону дат и дню недели, превращает
// «Время» в абсолютные интервалы (переход через полночь даёт End на
// следующий день) и сортирует по началу. Сортировка стабильная, чтобы
// при равных началах сохранялся порядок строк таблицы. Пустой результат
// не ошибка: движок расчёта обязан отработать и без расписания.
func Resolve(snap *Snapshot, vessel string, date time.Time, log *slog.Logger) []Interval {
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	day := WeekdayShort(date.Weekday())
	want := strings.ToLower(strings.TrimSpace(vessel))

	var schedule []Interval
	for _, row := range snap.Rows {
		if strings.ToLower(strings.TrimSpace(row.Vessel)) != want {
			continue
		}
		if date.Before(row.ValidityStart) || date.After(row.ValidityEnd) {
			continue
		}
		if !WeekdayMatches(day, row.WeekdayRule) {
			continue
		}
		start, end, err := parseTimeRange(row.TimeRange)
		if err != nil {
			log.Warn("пропущена тарифная строка", "vessel", row.Vessel, "err", err)
			continue
		}
		iv := Interval{Start: date.Add(start), End: date.Add(end), Rate: row.HourlyRate}
		if start >= end {
			iv.End = iv.End.AddDate(0, 0, 1)
		}
		schedule = append(schedule, iv)
	}
	if len(schedule) == 0 {
		log.Warn("нет подходящих тарифных строк", "vessel", vessel, "date", date.Format("02.01.06"))
	}
	sort.SliceStable(schedule, func(i, j int) bool {
		return schedule[i].Start.Before(schedule[j].Start)
	})
	return schedule
}
