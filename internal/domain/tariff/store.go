package tariff

import (
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
)

// Snapshot — неизменяемый срез тарифной базы. Читатели держат указатель
// на срез целиком, поэтому обновление никогда не покажет им смесь
// старых и новых строк.
type Snapshot struct {
	Rows    []Row
	Vessels []Vessel
}

// GetVessel ищет теплоход по имени без учёта регистра и крайних пробелов.
func (s *Snapshot) GetVessel(name string) (*Vessel, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	for i := range s.Vessels {
		if strings.ToLower(strings.TrimSpace(s.Vessels[i].Name)) == want {
			return &s.Vessels[i], true
		}
	}
	return nil, false
}

// Loader читает тарифную базу из внешнего источника (xlsx-файл).
type Loader interface {
	Load() (*Snapshot, error)
}

// Store хранит активный снапшот и атомарно подменяет его при Refresh.
// Неудачный Refresh оставляет прежний снапшот в работе.
type Store struct {
	loader Loader
	log    *slog.Logger
	snap   atomic.Pointer[Snapshot]
}

func NewStore(loader Loader, log *slog.Logger) *Store {
	s := &Store{loader: loader, log: log}
	s.snap.Store(&Snapshot{})
	return s
}

// Snapshot возвращает активный срез; никогда не nil.
func (s *Store) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Refresh перечитывает базу и подменяет снапшот.
func (s *Store) Refresh() error {
	snap, err := s.loader.Load()
	if err != nil {
		return fmt.Errorf("load tariff data: %w", err)
	}
	s.snap.Store(snap)
	s.log.Info("тарифная база обновлена", "rows", len(snap.Rows), "vessels", len(snap.Vessels))
	return nil
}

// Stats — размер активного снапшота (для /health).
func (s *Store) Stats() (rows, vessels int) {
	snap := s.snap.Load()
	return len(snap.Rows), len(snap.Vessels)
}
