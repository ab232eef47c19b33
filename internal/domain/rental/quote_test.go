package rental

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mkornev/rental-bot/internal/domain/tariff"
)

type stubLoader struct{ snap *tariff.Snapshot }

func (l *stubLoader) Load() (*tariff.Snapshot, error) { return l.snap, nil }

func testService(t *testing.T, snap *tariff.Snapshot) *Service {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := tariff.NewStore(&stubLoader{snap: snap}, log)
	require.NoError(t, store.Refresh())
	return NewService(store, log)
}

func fleetSnapshot() *tariff.Snapshot {
	return &tariff.Snapshot{
		Vessels: []tariff.Vessel{{
			Name:         "Антверпен",
			Link:         "https://example.com/antwerpen",
			DockAddress:  "Университетская 13",
			CleaningCost: 3000,
		}},
		Rows: []tariff.Row{{
			Vessel:        "Антверпен",
			ValidityStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			ValidityEnd:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			WeekdayRule:   "Пн-Вс",
			TimeRange:     "20:00-06:00",
			HourlyRate:    16000,
		}},
	}
}

func TestQuoteFullFormat(t *testing.T) {
	svc := testService(t, fleetSnapshot())

	req, err := Parse([]string{"07.09.25", "антверпен", "21:30-22:30-02:30-03:00"})
	require.NoError(t, err)

	q, err := svc.Quote(req)
	require.NoError(t, err)
	require.Empty(t, q.Gaps)

	// подготовка 1ч*0.5 + аренда 4ч + разгрузка 0.5ч*0.5 = 4.75ч по 16000
	require.Equal(t, "Антверпен", q.Vessel.Name)
	require.Len(t, q.Breakdown, 1)
	require.InDelta(t, 4.75, q.Breakdown[0].Hours, 1e-9)
	require.InDelta(t, 16000, q.Breakdown[0].Rate, 1e-9)
	require.InDelta(t, 4.75*16000+3000, q.Total, 1e-6)

	want := "07.09.25\n\n" +
		"Антверпен - https://example.com/antwerpen\n" +
		"21:30 - Подготовка (50%)\n" +
		"22:30 - Посадка\n" +
		"02:30 - Высадка\n" +
		"03:00 - Разгрузка (50%)\n" +
		"Причал: Университетская 13\n" +
		"Аренда: (16000₽/ч x 4.75ч) + 3000₽ (уборка) = 79000₽"
	require.Equal(t, want, q.Render())
}

func TestQuoteShortFormat(t *testing.T) {
	svc := testService(t, fleetSnapshot())

	req, err := Parse([]string{"07.09.25", "Антверпен", "23:00-01:00"})
	require.NoError(t, err)

	q, err := svc.Quote(req)
	require.NoError(t, err)
	require.Empty(t, q.Gaps)
	require.Len(t, q.Timeline, 2)
	require.InDelta(t, 2*16000+3000, q.Total, 1e-6)

	want := "07.09.25\n\n" +
		"Антверпен - https://example.com/antwerpen\n" +
		"23:00 - Посадка\n" +
		"01:00 - Высадка\n" +
		"Причал: Университетская 13\n" +
		"Аренда: (16000₽/ч x 2.00ч) + 3000₽ (уборка) = 35000₽"
	require.Equal(t, want, q.Render())
}

func TestQuoteUnknownVessel(t *testing.T) {
	svc := testService(t, fleetSnapshot())

	req, err := Parse([]string{"07.09.25", "Хемингуэй", "18-22"})
	require.NoError(t, err)

	_, err = svc.Quote(req)
	require.ErrorContains(t, err, "Хемингуэй")
}

func TestQuoteEmptyScheduleStillQuotes(t *testing.T) {
	snap := fleetSnapshot()
	snap.Rows = nil
	svc := testService(t, snap)

	req, err := Parse([]string{"07.09.25", "Антверпен", "18-22"})
	require.NoError(t, err)

	q, err := svc.Quote(req)
	require.NoError(t, err)
	require.Len(t, q.Gaps, 1)
	require.InDelta(t, 3000, q.Total, 1e-9) // только уборка
	require.Contains(t, q.Render(), "(0₽/ч x 4.00ч) + 3000₽ (уборка) = 3000₽")
}
