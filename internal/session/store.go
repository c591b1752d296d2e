// Package session хранит процессы отправки формы по представлениям.
//
// Представление (view) соответствует одной вкладке браузера с формой и
// определяется идентификатором из cookie. Процесс создается при первом
// обращении и закрывается при явном удалении или после периода неактивности.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/InQaaaaGit/shorten_form.git/internal/workflow"
	"go.uber.org/zap"
)

// minSweepInterval нижняя граница периода очистки.
const minSweepInterval = time.Second

// Factory создает процесс для нового представления.
type Factory func() *workflow.Workflow

// Hooks вызываются при создании и удалении представления.
type Hooks struct {
	Mounted   func()
	Unmounted func()
}

// Option настраивает Store.
type Option func(*Store)

// WithHooks подключает обработчики событий жизненного цикла.
func WithHooks(h Hooks) Option {
	return func(s *Store) {
		if h.Mounted != nil {
			s.hooks.Mounted = h.Mounted
		}
		if h.Unmounted != nil {
			s.hooks.Unmounted = h.Unmounted
		}
	}
}

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

type view struct {
	wf       *workflow.Workflow
	lastSeen time.Time
}

// Store реестр представлений. Безопасен для конкурентного использования.
type Store struct {
	mu      sync.Mutex
	views   map[string]*view
	factory Factory
	ttl     time.Duration
	now     func() time.Time
	hooks   Hooks
	logger  *zap.Logger
}

// NewStore создает реестр с временем жизни неактивного представления ttl.
func NewStore(factory Factory, ttl time.Duration, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		views:   make(map[string]*view),
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
		hooks:   Hooks{Mounted: func() {}, Unmounted: func() {}},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get возвращает процесс представления id, создавая его при первом обращении.
func (s *Store) Get(id string) *workflow.Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.views[id]; ok {
		v.lastSeen = s.now()
		return v.wf
	}

	v := &view{wf: s.factory(), lastSeen: s.now()}
	s.views[id] = v
	s.hooks.Mounted()
	s.logger.Debug("View mounted", zap.String("view", id))
	return v.wf
}

// Remove закрывает и удаляет представление. Возвращает false, если его не было.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.views[id]
	if !ok {
		return false
	}
	s.unmountLocked(id, v)
	return true
}

// Len возвращает число активных представлений.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// Sweep удаляет представления, неактивные дольше ttl, и возвращает их число.
// Представления с выполняющейся отправкой не удаляются.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := s.now().Add(-s.ttl)
	removed := 0
	for id, v := range s.views {
		if !v.lastSeen.Before(deadline) || v.wf.State().IsSubmitting {
			continue
		}
		s.unmountLocked(id, v)
		removed++
	}
	if removed > 0 {
		s.logger.Info("Expired views removed", zap.Int("count", removed), zap.Int("active", len(s.views)))
	}
	return removed
}

// Run периодически вызывает Sweep до отмены ctx, затем закрывает все представления.
func (s *Store) Run(ctx context.Context) {
	interval := s.ttl / 2
	if interval < minSweepInterval {
		interval = minSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Close()
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Close закрывает все представления.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, v := range s.views {
		s.unmountLocked(id, v)
	}
}

func (s *Store) unmountLocked(id string, v *view) {
	v.wf.Close()
	delete(s.views, id)
	s.hooks.Unmounted()
	s.logger.Debug("View unmounted", zap.String("view", id))
}
