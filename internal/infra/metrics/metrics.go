package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuotesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentalbot_quotes_total",
		Help: "Сколько расчётов аренды выдано.",
	})

	QuoteErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rentalbot_quote_errors_total",
		Help: "Сколько запросов отклонено из-за ошибок ввода.",
	})

	RefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rentalbot_data_refresh_total",
		Help: "Обновления тарифной базы по результату.",
	}, []string{"result"})
)
