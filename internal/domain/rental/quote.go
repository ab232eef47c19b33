package rental

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mkornev/rental-bot/internal/domain/pricing"
	"github.com/mkornev/rental-bot/internal/domain/tariff"
)

const (
	fullFactor = 1.0
	techFactor = 0.5 // подготовка и разгрузка идут за полцены
)

// Quote — результат расчёта: всё, что нужно для ответа менеджеру.
type Quote struct {
	Date      time.Time
	Vessel    tariff.Vessel
	Timeline  []time.Time // 2 или 4 метки, уже разнесённые по суткам
	Breakdown []pricing.Allocation
	Cleaning  float64
	Total     float64
	Gaps      []pricing.Gap
}

// Service считает аренду поверх активного снапшота тарифной базы.
type Service struct {
	store *tariff.Store
	log   *slog.Logger
}

func NewService(store *tariff.Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Quote рассчитывает стоимость по запросу. Ошибкой считается только
// некорректный ввод (неизвестный теплоход); дыры в тарифной сетке
// закрываются резервной ставкой и попадают в Quote.Gaps.
func (s *Service) Quote(req Request) (*Quote, error) {
	snap := s.store.Snapshot()

	vessel, ok := snap.GetVessel(req.Vessel)
	if !ok {
		return nil, fmt.Errorf("теплоход %q не найден", req.Vessel)
	}

	timeline := req.Timeline()

	// Сегменты с коэффициентами; расписание строится на дату посадки.
	var segments []pricing.Segment
	var boarding time.Time
	if len(timeline) == 4 {
		boarding = timeline[1]
		segments = []pricing.Segment{
			{Start: timeline[0], End: timeline[1], Factor: techFactor},
			{Start: timeline[1], End: timeline[2], Factor: fullFactor},
			{Start: timeline[2], End: timeline[3], Factor: techFactor},
		}
	} else {
		boarding = timeline[0]
		segments = []pricing.Segment{
			{Start: timeline[0], End: timeline[1], Factor: fullFactor},
		}
	}

	schedule := tariff.Resolve(snap, vessel.Name, boarding, s.log)
	cost, allocs, gaps := pricing.Price(segments, schedule)
	for _, g := range gaps {
		s.log.Warn("тарифная сетка не покрывает аренду",
			"vessel", vessel.Name,
			"from", g.Segment.Start.Format("02.01.06 15:04"),
			"hours", g.Hours,
			"rate", g.Rate)
	}

	return &Quote{
		Date:      req.Date,
		Vessel:    *vessel,
		Timeline:  timeline,
		Breakdown: pricing.Aggregate(allocs),
		Cleaning:  vessel.CleaningCost,
		Total:     cost + vessel.CleaningCost,
		Gaps:      gaps,
	}, nil
}

// Render форматирует ответ менеджеру в принятом виде:
//
//	07.09.25
//
//	Антверпен - https://...
//	21:30 - Подготовка (50%)
//	22:30 - Посадка
//	02:30 - Высадка
//	03:00 - Разгрузка (50%)
//	Причал: ...
//	Аренда: (16000₽/ч x 4.00ч) + 3000₽ (уборка) = 67000₽
func (q *Quote) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", q.Date.Format("02.01.06"))
	fmt.Fprintf(&b, "%s - %s\n", q.Vessel.Name, q.Vessel.Link)
	if len(q.Timeline) == 4 {
		fmt.Fprintf(&b, "%s - Подготовка (50%%)\n", q.Timeline[0].Format("15:04"))
		fmt.Fprintf(&b, "%s - Посадка\n", q.Timeline[1].Format("15:04"))
		fmt.Fprintf(&b, "%s - Высадка\n", q.Timeline[2].Format("15:04"))
		fmt.Fprintf(&b, "%s - Разгрузка (50%%)\n", q.Timeline[3].Format("15:04"))
	} else {
		fmt.Fprintf(&b, "%s - Посадка\n", q.Timeline[0].Format("15:04"))
		fmt.Fprintf(&b, "%s - Высадка\n", q.Timeline[1].Format("15:04"))
	}
	fmt.Fprintf(&b, "Причал: %s\n", q.Vessel.DockAddress)
	fmt.Fprintf(&b, "Аренда: %s + %d₽ (уборка) = %d₽",
		pricing.FormatBreakdown(q.Breakdown), int(q.Cleaning), int(q.Total))
	return b.String()
}
