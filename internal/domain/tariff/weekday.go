package tariff

import (
	"strings"
	"time"
)

// Канонический порядок недели, индексы 0..6.
var week = []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// WeekdayShort переводит time.Weekday в короткое русское имя (Пн..Вс).
func WeekdayShort(d time.Weekday) string {
	// time.Weekday начинается с воскресенья
	return week[(int(d)+6)%7]
}

func weekIndex(name string) int {
	for i, w := range week {
		if w == name {
			return i
		}
	}
	return -1
}

// WeekdayMatches проверяет, попадает ли день в правило из таблицы:
// перечисление через запятую, элемент — имя дня либо диапазон "Пт-Вс".
// Диапазон с началом позже конца заворачивается через границу недели
// ("Пт-Пн" = Пт, Сб, Вс, Пн). Неизвестный токен проваливает только себя,
// остальные элементы правила всё ещё могут совпасть.
func WeekdayMatches(day string, rule string) bool {
	di := weekIndex(day)
	if di < 0 {
		return false
	}
	for _, opt := range strings.Split(rule, ",") {
		opt = strings.TrimSpace(opt)
		if from, to, ok := strings.Cut(opt, "-"); ok {
			si := weekIndex(strings.TrimSpace(from))
			ei := weekIndex(strings.TrimSpace(to))
			if si < 0 || ei < 0 {
				continue
			}
			if si <= ei {
				if si <= di && di <= ei {
					return true
				}
			} else if di >= si || di <= ei {
				return true
			}
			continue
		}
		if day == opt {
			return true
		}
	}
	return false
}
