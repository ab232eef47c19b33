package tariff

import "time"

// Row — строка листа «Цены»: тарифная ставка теплохода,
// действующая в диапазоне дат, по дням недели и времени суток.
type Row struct {
	Vessel        string
	ValidityStart time.Time // дата, без времени
	ValidityEnd   time.Time
	WeekdayRule   string // "Пн-Чт" или "Пт,Сб"
	TimeRange     string // "HH:MM-HH:MM", может переходить через полночь
	HourlyRate    float64
}

// Vessel — строка листа «Теплоходы».
type Vessel struct {
	Name         string
	Link         string
	DockAddress  string
	CleaningCost float64
}

// Interval — абсолютный тарифный интервал, собранный резолвером
// под конкретную дату посадки. End >= Start; при переходе через
// полночь End попадает на следующий календарный день.
type Interval struct {
	Start time.Time
	End   time.Time
	Rate  float64
}
