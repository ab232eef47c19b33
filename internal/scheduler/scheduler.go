package scheduler

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mkornev/rental-bot/internal/domain/tariff"
	"github.com/mkornev/rental-bot/internal/infra/metrics"
)

// Scheduler периодически перечитывает тарифную книгу, чтобы ручное
// «обнови базу» не было единственным способом подтянуть правки.
type Scheduler struct {
	cron  *cron.Cron
	store *tariff.Store
	log   *slog.Logger
}

func New(store *tariff.Store, loc *time.Location, log *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithLocation(loc)),
		store: store,
		log:   log,
	}
}

// Register добавляет задание обновления по cron-выражению
// (например "0 6 * * *").
func (s *Scheduler) Register(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.store.Refresh(); err != nil {
			metrics.RefreshTotal.WithLabelValues("error").Inc()
			s.log.Error("плановое обновление базы не удалось", "err", err)
			return
		}
		metrics.RefreshTotal.WithLabelValues("ok").Inc()
	})
	return err
}

func (s *Scheduler) Start() { s.cron.Start() }

func (s *Scheduler) Stop() { s.cron.Stop() }
