package xlsx

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mkornev/rental-bot/internal/domain/tariff"
)

const (
	sheetVessels = "Теплоходы"
	sheetPrices  = "Цены"
)

// Loader читает тарифную книгу: лист «Теплоходы» (название, ссылка,
// адрес причала, стоимость уборки) и лист «Цены» (название, даты
// действия, день недели, время, ставка руб/ч). Первая строка каждого
// листа — заголовок. Кривые строки пропускаются с предупреждением,
// нечитаемый файл или отсутствующий лист — ошибка целиком.
type Loader struct {
	path string
	log  *slog.Logger
}

func New(path string, log *slog.Logger) *Loader {
	return &Loader{path: path, log: log}
}

func (l *Loader) Load() (*tariff.Snapshot, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("открыть %s: %w", l.path, err)
	}
	defer func() { _ = f.Close() }()

	vessels, err := l.loadVessels(f)
	if err != nil {
		return nil, err
	}
	rows, err := l.loadPrices(f)
	if err != nil {
		return nil, err
	}
	return &tariff.Snapshot{Rows: rows, Vessels: vessels}, nil
}

func (l *Loader) loadVessels(f *excelize.File) ([]tariff.Vessel, error) {
	rows, err := f.GetRows(sheetVessels)
	if err != nil {
		return nil, fmt.Errorf("лист %q: %w", sheetVessels, err)
	}

	out := make([]tariff.Vessel, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		name := cell(row, 0)
		if name == "" {
			continue
		}
		v := tariff.Vessel{
			Name:        name,
			Link:        cell(row, 1),
			DockAddress: cell(row, 2),
		}
		if raw := cell(row, 3); raw != "" {
			c, err := parseRate(raw)
			if err != nil {
				l.log.Warn("не разобрана стоимость уборки", "vessel", name, "value", raw)
			} else {
				v.CleaningCost = c
			}
		}
		out = append(out, v)
	}
	return out, nil
}

func (l *Loader) loadPrices(f *excelize.File) ([]tariff.Row, error) {
	rows, err := f.GetRows(sheetPrices)
	if err != nil {
		return nil, fmt.Errorf("лист %q: %w", sheetPrices, err)
	}

	out := make([]tariff.Row, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		name := cell(row, 0)
		if name == "" {
			continue
		}

		start, err := parseDate(cell(row, 1))
		if err != nil {
			l.log.Warn("пропущена тарифная строка: дата начала", "row", i+1, "err", err)
			continue
		}
		end, err := parseDate(cell(row, 2))
		if err != nil {
			l.log.Warn("пропущена тарифная строка: дата окончания", "row", i+1, "err", err)
			continue
		}

		// Кривая ставка не валит строку: тариф считается нулевым.
		rate, err := parseRate(cell(row, 5))
		if err != nil {
			l.log.Warn("не разобрана ставка, принята за 0", "row", i+1, "value", cell(row, 5))
			rate = 0
		}

		out = append(out, tariff.Row{
			Vessel:        name,
			ValidityStart: start,
			ValidityEnd:   end,
			WeekdayRule:   cell(row, 3),
			TimeRange:     cell(row, 4),
			HourlyRate:    rate,
		})
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseDate принимает даты в том виде, в каком их отдаёт excelize:
// «02.01.2006», «02.01.06» или ISO «2006-01-02».
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"02.01.2006", "02.01.06", "2006-01-02", "01-02-06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("неверный формат даты: %q", s)
}

// parseRate терпит пробелы-разделители тысяч и запятую вместо точки
// («16 000,50»).
func parseRate(s string) (float64, error) {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}
