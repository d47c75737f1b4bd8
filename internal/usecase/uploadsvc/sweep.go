package uploadsvc

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

// SweepPartials удаляет недописанные файлы старше ttl и возвращает число удалённых.
func (s *Files) SweepPartials(ttl time.Duration) (int, error) {
	entries, err := afero.ReadDir(s.Fs, s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	now := s.Now()
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), partialPrefix) {
			continue
		}
		if now.Sub(e.ModTime()) < ttl {
			continue
		}
		if err := s.Fs.Remove(filepath.Join(s.Dir, e.Name())); err != nil {
			s.Logger.Warn("remove stale partial", "name", e.Name(), "err", err)
			continue
		}
		removed++
	}

	return removed, nil
}

// StartSweeper стартует периодическую очистку каталога. Возвращает функцию остановки.
func (s *Files) StartSweeper(ttl time.Duration, every time.Duration) func() {
	if every <= 0 || ttl <= 0 {
		return func() {}
	}

	ticker := time.NewTicker(every)
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		for {
			select {
			case <-ticker.C:
				n, err := s.SweepPartials(ttl)
				if err != nil {
					s.Logger.Error("sweep partials", "err", err)
					continue
				}
				if n > 0 {
					s.Logger.Info("removed stale partials", "count", n)
				}
			case <-stop:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stop)
		})
	}
}
