package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mkornev/rental-bot/internal/domain/tariff"
)

var day = time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func TestOverlapHours(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           float64
	}{
		{"полное вложение", at(12, 0), at(14, 0), at(10, 0), at(18, 0), 2},
		{"частичное", at(16, 0), at(20, 0), at(10, 0), at(18, 0), 2},
		{"без пересечения", at(8, 0), at(9, 0), at(10, 0), at(18, 0), 0},
		{"касание границ", at(8, 0), at(10, 0), at(10, 0), at(18, 0), 0},
		{"нулевой интервал", at(12, 0), at(12, 0), at(10, 0), at(18, 0), 0},
		{"дробные часы", at(21, 30), at(22, 15), at(20, 0), at(23, 0), 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, OverlapHours(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd), 1e-9)
			// симметрия: не важно, что считать сегментом, а что тарифом
			require.InDelta(t, tt.want, OverlapHours(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd), 1e-9)
		})
	}
}

func TestPriceSingleInterval(t *testing.T) {
	schedule := []tariff.Interval{{Start: at(10, 0), End: at(23, 0), Rate: 10000}}
	segs := []Segment{{Start: at(18, 0), End: at(22, 0), Factor: 1.0}}

	total, allocs, gaps := Price(segs, schedule)
	require.InDelta(t, 40000, total, 1e-9)
	require.Equal(t, []Allocation{{Rate: 10000, Hours: 4}}, allocs)
	require.Empty(t, gaps)
}

func TestPriceSpansTwoIntervalsInOrder(t *testing.T) {
	schedule := []tariff.Interval{
		{Start: at(18, 0), End: at(22, 0), Rate: 100},
		{Start: at(22, 0), End: day.AddDate(0, 0, 1).Add(2 * time.Hour), Rate: 200},
	}
	segs := []Segment{{Start: at(20, 0), End: day.AddDate(0, 0, 1), Factor: 1.0}}

	total, allocs, gaps := Price(segs, schedule)
	require.Empty(t, gaps)
	// счёт идёт непрерывно от раннего пересечения к позднему
	require.Equal(t, []Allocation{{Rate: 100, Hours: 2}, {Rate: 200, Hours: 2}}, allocs)
	require.InDelta(t, 600, total, 1e-9)
}

func TestPriceClipsOverlappingRows(t *testing.T) {
	// две строки покрывают один и тот же слот: часы не удваиваются,
	// при равном начале пересечения побеждает порядок таблицы
	schedule := []tariff.Interval{
		{Start: at(18, 0), End: at(22, 0), Rate: 100},
		{Start: at(18, 0), End: at(22, 0), Rate: 200},
	}
	segs := []Segment{{Start: at(18, 0), End: at(20, 0), Factor: 1.0}}

	total, allocs, gaps := Price(segs, schedule)
	require.Empty(t, gaps)
	require.Equal(t, []Allocation{{Rate: 100, Hours: 2}}, allocs)
	require.InDelta(t, 200, total, 1e-9)
}

func TestPriceDiscountFactor(t *testing.T) {
	schedule := []tariff.Interval{{Start: at(10, 0), End: at(23, 0), Rate: 1000}}
	segs := []Segment{{Start: at(20, 0), End: at(21, 0), Factor: 0.5}}

	total, allocs, _ := Price(segs, schedule)
	require.Equal(t, []Allocation{{Rate: 1000, Hours: 0.5}}, allocs)
	require.InDelta(t, 500, total, 1e-9)
}

func TestPriceCoverageGapFallsBackToLastRate(t *testing.T) {
	schedule := []tariff.Interval{
		{Start: at(10, 0), End: at(18, 0), Rate: 100},
		{Start: at(18, 0), End: at(20, 0), Rate: 200},
	}
	segs := []Segment{{Start: at(19, 0), End: at(22, 0), Factor: 1.0}}

	total, allocs, gaps := Price(segs, schedule)
	// 1 час покрыт, 2 часа добиты по ставке последнего интервала
	require.Equal(t, []Allocation{{Rate: 200, Hours: 1}, {Rate: 200, Hours: 2}}, allocs)
	require.InDelta(t, 600, total, 1e-9)
	require.Len(t, gaps, 1)
	require.InDelta(t, 2, gaps[0].Hours, 1e-9)
	require.InDelta(t, 200, gaps[0].Rate, 1e-9)
}

func TestPriceEmptyScheduleIsZeroWithDiagnostic(t *testing.T) {
	segs := []Segment{{Start: at(18, 0), End: at(22, 0), Factor: 1.0}}

	total, allocs, gaps := Price(segs, nil)
	require.InDelta(t, 0, total, 1e-9)
	require.Equal(t, []Allocation{{Rate: 0, Hours: 4}}, allocs)
	require.Len(t, gaps, 1)
	require.InDelta(t, 4, gaps[0].Hours, 1e-9)
}

func TestPriceZeroDurationSegmentIgnored(t *testing.T) {
	schedule := []tariff.Interval{{Start: at(10, 0), End: at(23, 0), Rate: 1000}}
	segs := []Segment{{Start: at(18, 0), End: at(18, 0), Factor: 0.5}}

	total, allocs, gaps := Price(segs, schedule)
	require.Zero(t, total)
	require.Empty(t, allocs)
	require.Empty(t, gaps)
}

func TestPriceConservesHours(t *testing.T) {
	// сумма выделенных часов по всем сегментам окна равна длине окна,
	// как бы криво ни пересекались тарифные строки
	schedule := []tariff.Interval{
		{Start: at(10, 0), End: at(20, 0), Rate: 100},
		{Start: at(15, 0), End: at(22, 0), Rate: 200},
		{Start: at(21, 0), End: day.AddDate(0, 0, 1).Add(4 * time.Hour), Rate: 300},
	}
	segs := []Segment{
		{Start: at(12, 0), End: at(16, 0), Factor: 1.0},
		{Start: at(16, 0), End: at(23, 0), Factor: 1.0},
		{Start: at(23, 0), End: day.AddDate(0, 0, 1).Add(1 * time.Hour), Factor: 1.0},
	}

	_, allocs, _ := Price(segs, schedule)
	var sum float64
	for _, a := range allocs {
		sum += a.Hours
	}
	require.InDelta(t, 13, sum, 1e-9) // 4 + 7 + 2
}
