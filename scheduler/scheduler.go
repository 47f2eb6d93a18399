package scheduler

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// TaskFn is the function signature for scheduled tasks.
type TaskFn func()

const (
	KindTicker = "ticker"
	KindDelay  = "delay"
)

// TaskInfo describes a registered task for diagnostics.
type TaskInfo struct {
	Name     string        `json:"name"`
	Kind     string        `json:"kind"`
	Interval time.Duration `json:"interval,omitempty"` // tickers
	Due      time.Time     `json:"due,omitempty"`      // delays
}

// Scheduler runs named periodic and one-shot tasks. Task panics are recovered
// and logged. After Stop no new task is started.
type Scheduler struct {
	mu      sync.Mutex
	tickers map[string]*tickerEntry
	delays  map[string]*delayEntry
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped bool
}

type tickerEntry struct {
	interval time.Duration
	stopCh   chan struct{}
}

type delayEntry struct {
	timer *time.Timer
	due   time.Time
}

// New creates a new Scheduler.
func New(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		tickers: make(map[string]*tickerEntry),
		delays:  make(map[string]*delayEntry),
		stopCh:  make(chan struct{}),
		logger:  logger,
	}
}

func (s *Scheduler) run(name string, fn TaskFn) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduler task panicked",
				zap.String("task", name),
				zap.Any("recover", r))
		}
	}()
	fn()
}

// AddTicker registers a task to run on a fixed interval.
// If a ticker with the same name exists, it is replaced.
func (s *Scheduler) AddTicker(name string, interval time.Duration, fn TaskFn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || interval <= 0 {
		return
	}

	if old, ok := s.tickers[name]; ok {
		close(old.stopCh)
	}
	entry := &tickerEntry{interval: interval, stopCh: make(chan struct{})}
	s.tickers[name] = entry

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.run(name, fn)
			case <-entry.stopCh:
				return
			case <-s.stopCh:
				return
			}
		}
	}()
	s.logger.Info("scheduler task registered", zap.String("name", name), zap.Duration("interval", interval))
}

// AddDelay runs fn once after the given delay. A pending delay with the same
// name is cancelled and replaced.
func (s *Scheduler) AddDelay(name string, delay time.Duration, fn TaskFn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	if old, ok := s.delays[name]; ok {
		old.timer.Stop()
	}
	entry := &delayEntry{due: time.Now().Add(delay)}
	entry.timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		if s.delays[name] == entry {
			delete(s.delays, name)
		}
		s.mu.Unlock()
		s.run(name, fn)
	})
	s.delays[name] = entry
}

// Remove stops and removes a ticker or delay task by name and reports
// whether one existed.
func (s *Scheduler) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := false
	if entry, ok := s.tickers[name]; ok {
		close(entry.stopCh)
		delete(s.tickers, name)
		removed = true
	}
	if d, ok := s.delays[name]; ok {
		d.timer.Stop()
		delete(s.delays, name)
		removed = true
	}
	return removed
}

// Stop stops all tickers and cancels pending delays.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	close(s.stopCh)
	for name, d := range s.delays {
		d.timer.Stop()
		delete(s.delays, name)
	}
}

// List returns every registered task, tickers first, each group by name.
func (s *Scheduler) List() []TaskInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TaskInfo, 0, len(s.tickers)+len(s.delays))
	for name, t := range s.tickers {
		out = append(out, TaskInfo{Name: name, Kind: KindTicker, Interval: t.interval})
	}
	for name, d := range s.delays {
		out = append(out, TaskInfo{Name: name, Kind: KindDelay, Due: d.due})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind == KindTicker
		}
		return out[i].Name < out[j].Name
	})
	return out
}
