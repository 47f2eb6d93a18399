// Package broadcast fans game state and notifications out over pub/sub and
// keeps the level ranking current.
package broadcast

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/kasuganosora/epicadventure/cache"
	"github.com/kasuganosora/epicadventure/game/entity"
	"github.com/kasuganosora/epicadventure/game/store"
	"github.com/kasuganosora/epicadventure/plugin/hook"
	"go.uber.org/zap"
)

const (
	StateChannel = "game:state"
	EventChannel = "game:event"
	RankingKey   = "ranking:level"

	eventQueueSize = 256
	publishTimeout = 2 * time.Second
)

// EventMessage is the payload published on EventChannel.
type EventMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// PlayerSource exposes the current player record.
type PlayerSource interface {
	Player() entity.Player
}

// Broadcaster implements store.Publisher. Snapshots are coalesced so only the
// newest pending one is published; events are queued and dropped when the
// queue is full.
type Broadcaster struct {
	pubsub cache.PubSub
	cache  cache.Cache
	logger *zap.Logger

	mu     sync.Mutex
	latest *store.Snapshot
	wake   chan struct{}
	events chan EventMessage

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a Broadcaster and starts its publish worker.
func New(ps cache.PubSub, c cache.Cache, logger *zap.Logger) *Broadcaster {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Broadcaster{
		pubsub: ps,
		cache:  c,
		logger: logger,
		wake:   make(chan struct{}, 1),
		events: make(chan EventMessage, eventQueueSize),
		stopCh: make(chan struct{}),
	}
	b.wg.Add(1)
	go b.worker()
	return b
}

// PublishSnapshot records snap as the newest state. It never blocks.
func (b *Broadcaster) PublishSnapshot(snap *store.Snapshot) {
	b.mu.Lock()
	if b.latest == nil || snap.Version >= b.latest.Version {
		b.latest = snap
	}
	b.mu.Unlock()
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// PublishEvent queues a notification for EventChannel.
func (b *Broadcaster) PublishEvent(event string, data interface{}) {
	select {
	case b.events <- EventMessage{Event: event, Data: data}:
	default:
		b.logger.Warn("broadcast event queue full, dropping", zap.String("event", event))
	}
}

// Attach forwards every notification raised through hc and refreshes the
// ranking entry on level-up. Attaching again replaces the earlier handlers.
func (b *Broadcaster) Attach(hc *hook.HookCenter, players PlayerSource) {
	hc.UnregisterAll("broadcast")
	hc.RegisterAll(hook.Notifications, 200, "broadcast", func(ctx context.Context, event string, data interface{}) (interface{}, error) {
		b.PublishEvent(event, data)
		if event == hook.OnPlayerLevelUp {
			b.RecordPlayer(ctx, players.Player())
		}
		return data, nil
	})
}

// RecordPlayer stores p's level in the ranking sorted set under its name.
func (b *Broadcaster) RecordPlayer(ctx context.Context, p entity.Player) {
	if b.cache == nil || p.Name == "" {
		return
	}
	if err := b.cache.ZAdd(ctx, RankingKey, float64(p.Level), p.Name); err != nil {
		b.logger.Warn("ranking update failed", zap.String("player", p.Name), zap.Error(err))
	}
}

// Stop publishes whatever is pending and stops the worker.
func (b *Broadcaster) Stop() {
	b.stopOnce.Do(func() { close(b.stopCh) })
	b.wg.Wait()
}

func (b *Broadcaster) worker() {
	defer b.wg.Done()
	for {
		select {
		case <-b.wake:
			b.flushState()
		case ev := <-b.events:
			b.publish(EventChannel, ev)
		case <-b.stopCh:
			for {
				select {
				case ev := <-b.events:
					b.publish(EventChannel, ev)
				default:
					b.flushState()
					return
				}
			}
		}
	}
}

func (b *Broadcaster) flushState() {
	b.mu.Lock()
	snap := b.latest
	b.latest = nil
	b.mu.Unlock()
	if snap != nil {
		b.publish(StateChannel, snap)
	}
}

func (b *Broadcaster) publish(channel string, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		b.logger.Error("broadcast encode failed", zap.String("channel", channel), zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := b.pubsub.Publish(ctx, channel, string(payload)); err != nil {
		b.logger.Warn("broadcast publish failed", zap.String("channel", channel), zap.Error(err))
	}
}
