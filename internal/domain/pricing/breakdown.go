package pricing

import (
	"fmt"
	"strings"
)

// Aggregate сливает записи с одинаковой ставкой, суммируя часы.
// Порядок результата — порядок первого появления ставки, он же задаёт
// порядок слагаемых в ответе менеджеру.
func Aggregate(allocs []Allocation) []Allocation {
	idx := make(map[float64]int, len(allocs))
	out := make([]Allocation, 0, len(allocs))
	for _, a := range allocs {
		if i, ok := idx[a.Rate]; ok {
			out[i].Hours += a.Hours
			continue
		}
		idx[a.Rate] = len(out)
		out = append(out, a)
	}
	return out
}

// FormatBreakdown собирает строку вида
// «(16000₽/ч x 4.75ч) + (15000₽/ч x 1.50ч)».
// Пустой список часов отображается как нулевое слагаемое.
func FormatBreakdown(allocs []Allocation) string {
	if len(allocs) == 0 {
		return "(0₽/ч x 0.00ч)"
	}
	parts := make([]string, 0, len(allocs))
	for _, a := range allocs {
		parts = append(parts, fmt.Sprintf("(%d₽/ч x %.2fч)", int(a.Rate), a.Hours))
	}
	return strings.Join(parts, " + ")
}
