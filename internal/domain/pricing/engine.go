package pricing

import (
	"sort"
	"time"

	"github.com/mkornev/rental-bot/internal/domain/tariff"
)

// Segment — отрезок аренды с коэффициентом тарифа:
// 0.5 для технических часов (подготовка/разгрузка), 1.0 для основного.
type Segment struct {
	Start  time.Time
	End    time.Time
	Factor float64
}

func (s Segment) hours() float64 {
	return s.End.Sub(s.Start).Hours()
}

// Allocation — сколько оплаченных часов пришлось на ставку.
// Порядок записей — порядок обнаружения, его сохраняет агрегация.
type Allocation struct {
	Rate  float64
	Hours float64
}

// Gap — часы сегмента, не покрытые ни одной тарифной строкой;
// они тарифицируются по ставке последнего интервала расписания
// (или по нулю, если расписание пусто).
type Gap struct {
	Segment Segment
	Hours   float64
	Rate    float64
}

// OverlapHours возвращает пересечение двух интервалов в часах, не меньше нуля.
func OverlapHours(aStart, aEnd, bStart, bEnd time.Time) float64 {
	latest := aStart
	if bStart.After(latest) {
		latest = bStart
	}
	earliest := aEnd
	if bEnd.Before(earliest) {
		earliest = bEnd
	}
	h := earliest.Sub(latest).Hours()
	if h < 0 {
		return 0
	}
	return h
}

type overlapped struct {
	start time.Time // начало пересечения с сегментом
	hours float64
	rate  float64
}

// Price считает стоимость аренды по сегментам и расписанию.
//
// Внутри сегмента пересечения с тарифными интервалами обходятся по
// возрастанию начала пересечения (при равенстве — в порядке строк
// таблицы) и часы набираются до номинальной длительности сегмента:
// лишнее у более поздних интервалов срезается, повторная оплата одного
// часа исключена. Недобор закрывается по ставке последнего интервала
// расписания и фиксируется как Gap.
func Price(segments []Segment, schedule []tariff.Interval) (total float64, allocs []Allocation, gaps []Gap) {
	for _, seg := range segments {
		need := seg.hours()
		if need <= 0 {
			continue
		}

		var over []overlapped
		for _, iv := range schedule {
			h := OverlapHours(seg.Start, seg.End, iv.Start, iv.End)
			if h <= 0 {
				continue
			}
			from := iv.Start
			if seg.Start.After(from) {
				from = seg.Start
			}
			over = append(over, overlapped{start: from, hours: h, rate: iv.Rate})
		}
		sort.SliceStable(over, func(i, j int) bool {
			return over[i].start.Before(over[j].start)
		})

		remaining := need
		for _, o := range over {
			if remaining <= 0 {
				break
			}
			used := o.hours
			if used > remaining {
				used = remaining
			}
			remaining -= used

			effective := used * seg.Factor
			total += o.rate * effective
			allocs = append(allocs, Allocation{Rate: o.rate, Hours: effective})
		}

		if remaining > 0 {
			rate := 0.0
			if n := len(schedule); n > 0 {
				rate = schedule[n-1].Rate
			}
			effective := remaining * seg.Factor
			total += rate * effective
			allocs = append(allocs, Allocation{Rate: rate, Hours: effective})
			gaps = append(gaps, Gap{Segment: seg, Hours: remaining, Rate: rate})
		}
	}
	return total, allocs, gaps
}
