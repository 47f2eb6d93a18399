package audit

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kasuganosora/epicadventure/game/entity"
	"github.com/kasuganosora/epicadventure/model"
	"github.com/kasuganosora/epicadventure/plugin/hook"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	batchSize     = 100
	flushInterval = 2 * time.Second
	queueSize     = 1024
)

// Entry holds one progression event to be recorded.
type Entry struct {
	SessionID  string
	PlayerName string
	Event      string
	Level      int
	Payload    interface{}
}

// PlayerSource exposes the player the events belong to.
type PlayerSource interface {
	Player() entity.Player
}

// Service records progression events asynchronously in batches.
type Service struct {
	db      *gorm.DB
	ch      chan *model.ProgressEvent
	stopCh  chan struct{}
	wg      sync.WaitGroup
	logger  *zap.Logger
	session atomic.Value // string
	dropped atomic.Int64
}

// New creates a new audit Service and starts its background worker.
func New(db *gorm.DB, logger *zap.Logger) *Service {
	svc := &Service{
		db:     db,
		ch:     make(chan *model.ProgressEvent, queueSize),
		stopCh: make(chan struct{}),
		logger: logger,
	}
	svc.session.Store("")
	svc.wg.Add(1)
	go svc.worker()
	return svc
}

// SetSession tags subsequent events with the given session id.
func (svc *Service) SetSession(id string) { svc.session.Store(id) }

// Attach records every game notification raised through hc. Player name and
// level are read from players at the time of the event. Attaching again
// replaces the earlier handlers.
func (svc *Service) Attach(hc *hook.HookCenter, players PlayerSource) {
	hc.UnregisterAll("audit")
	hc.RegisterAll(hook.Notifications, 100, "audit", func(_ context.Context, event string, data interface{}) (interface{}, error) {
		p := players.Player()
		svc.Log(Entry{
			SessionID:  svc.session.Load().(string),
			PlayerName: p.Name,
			Event:      event,
			Level:      p.Level,
			Payload:    data,
		})
		return data, nil
	})
}

// Log enqueues an entry for async DB write. It never blocks; entries are
// dropped when the queue is full.
func (svc *Service) Log(entry Entry) {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		svc.logger.Warn("audit payload not encodable", zap.String("event", entry.Event), zap.Error(err))
		payload = []byte("null")
	}
	record := &model.ProgressEvent{
		SessionID:  entry.SessionID,
		PlayerName: entry.PlayerName,
		Event:      entry.Event,
		Level:      entry.Level,
		Payload:    datatypes.JSON(payload),
	}
	select {
	case svc.ch <- record:
	default:
		svc.dropped.Add(1)
		svc.logger.Warn("audit channel full, dropping entry",
			zap.String("event", entry.Event))
	}
}

// Dropped returns how many entries were discarded because the queue was full.
func (svc *Service) Dropped() int64 { return svc.dropped.Load() }

// Stop flushes remaining entries and shuts down the worker.
// It blocks until the worker goroutine has finished.
func (svc *Service) Stop(_ context.Context) {
	select {
	case <-svc.stopCh:
	default:
		close(svc.stopCh)
	}
	svc.wg.Wait()
}

func (svc *Service) worker() {
	defer svc.wg.Done()
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]*model.ProgressEvent, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := svc.db.Create(&batch).Error; err != nil {
			svc.logger.Error("audit batch write failed", zap.Int("rows", len(batch)), zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry := <-svc.ch:
			batch = append(batch, entry)
			if len(batch) >= batchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-svc.stopCh:
			for {
				select {
				case entry := <-svc.ch:
					batch = append(batch, entry)
				default:
					flush()
					return
				}
			}
		}
	}
}
