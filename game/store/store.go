// Package store holds the authoritative game state and the rules that
// mutate it. Every action runs to completion under one mutex and, when it
// changes anything, publishes a fresh Snapshot with a higher Version.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kasuganosora/epicadventure/game/content"
	"github.com/kasuganosora/epicadventure/game/entity"
	"github.com/kasuganosora/epicadventure/plugin/hook"
	"github.com/kasuganosora/epicadventure/scheduler"
	"go.uber.org/zap"
)

// ErrUnknownClass is returned by SelectClass for a class outside the catalog.
var ErrUnknownClass = errors.New("unknown class")

// Scheduler runs one-shot delayed tasks. *scheduler.Scheduler satisfies it.
type Scheduler interface {
	AddDelay(name string, delay time.Duration, fn scheduler.TaskFn)
}

// Hooks announces state transitions. *hook.HookCenter satisfies it.
type Hooks interface {
	Trigger(ctx context.Context, event string, data interface{}) (interface{}, error)
}

// Publisher receives every committed snapshot. It is called with the store
// lock held and must not block or call back into the Store.
type Publisher interface {
	PublishSnapshot(snap *Snapshot)
}

// Generator produces random game content.
type Generator interface {
	Quest(playerLevel, seq int) entity.Quest
	Enemy(zone string, playerLevel int) entity.Enemy
	Pet() entity.Pet
	Dungeon(index int) entity.Dungeon
}

// Config holds the tunable rates and delays.
type Config struct {
	SkillRadius        float64
	AuraDuration       time.Duration
	CounterattackDelay time.Duration
	RespawnDelay       time.Duration
	ManaRegen          float64 // points per second
	StaminaRegen       float64
	HealthRegen        float64
	ExplorationXP      int // granted per second of movement
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		SkillRadius:        10,
		AuraDuration:       time.Second,
		CounterattackDelay: time.Second,
		RespawnDelay:       2 * time.Second,
		ManaRegen:          2,
		StaminaRegen:       5,
		ExplorationXP:      1,
	}
}

// Counters are the aggregate tallies achievements are derived from.
type Counters struct {
	EnemiesDefeated int `json:"enemies_defeated"`
	QuestsCompleted int `json:"quests_completed"`
	DungeonsCleared int `json:"dungeons_cleared"`
}

type pendingEvent struct {
	name string
	data map[string]interface{}
}

// Store is the single owner of the game state.
type Store struct {
	mu     sync.Mutex
	cfg    Config
	gen    Generator
	sched  Scheduler
	hooks  Hooks
	pub    Publisher
	logger *zap.Logger

	version      uint64
	player       entity.Player
	skills       []entity.Skill
	pets         []entity.Pet
	enemies      []entity.Enemy
	quests       []entity.Quest
	achievements []entity.Achievement
	currentZone  string
	discovered   []string
	cleared      []string
	counters     Counters
	auraActive   bool
	auraColor    string

	// generation tokens for delayed tasks
	deathGen uint64
	auraGen  uint64
	taskSeq  uint64
	questSeq int

	regenCarry   [3]float64 // mana, stamina, health
	exploreCarry float64

	pending []pendingEvent
}

// New creates a Store in the starting state. hooks and pub may be nil.
func New(cfg Config, gen Generator, sched Scheduler, hooks Hooks, pub Publisher, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		cfg:    cfg,
		gen:    gen,
		sched:  sched,
		hooks:  hooks,
		pub:    pub,
		logger: logger,
	}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.player = entity.Player{
		Name:      "Hero",
		Class:     entity.ClassSwordsman,
		Level:     1,
		XPToNext:  100,
		Animation: "idle",
		Inventory: []string{},
		Stats: entity.Stats{
			Health: 100, MaxHealth: 100,
			Mana: 50, MaxMana: 50,
			Stamina: 100, MaxStamina: 100,
			Attack: 10, Defense: 5, Speed: 5, Magic: 5, Luck: 5,
		},
	}
	s.skills = content.InitializeClassSkills(entity.ClassSwordsman)
	s.achievements = content.Achievements()
	s.currentZone = content.StartingZone
	s.discovered = []string{content.StartingZone}
}

// apply runs fn under the lock. If fn reports a change the version is bumped
// and the snapshot published. Queued hook events fire after unlocking.
func (s *Store) apply(fn func() bool) bool {
	s.mu.Lock()
	changed := fn()
	if changed {
		s.version++
		if s.pub != nil {
			s.pub.PublishSnapshot(s.snapshotLocked())
		}
	}
	events := s.pending
	s.pending = nil
	s.mu.Unlock()

	s.fire(events)
	return changed
}

func (s *Store) emit(name string, data map[string]interface{}) {
	s.pending = append(s.pending, pendingEvent{name: name, data: data})
}

func (s *Store) fire(events []pendingEvent) {
	if s.hooks == nil {
		return
	}
	for _, ev := range events {
		if _, err := s.hooks.Trigger(context.Background(), ev.name, ev.data); err != nil && !errors.Is(err, hook.ErrInterrupt) {
			s.logger.Warn("hook failed", zap.String("event", ev.name), zap.Error(err))
		}
	}
}

// vetoed asks the before-hooks whether an action may proceed.
func (s *Store) vetoed(event string, data map[string]interface{}) bool {
	if s.hooks == nil {
		return false
	}
	_, err := s.hooks.Trigger(context.Background(), event, data)
	if errors.Is(err, hook.ErrInterrupt) {
		s.logger.Debug("action vetoed", zap.String("event", event))
		return true
	}
	if err != nil {
		s.logger.Warn("hook failed", zap.String("event", event), zap.Error(err))
	}
	return false
}

// delay schedules fn under a unique task name so concurrent tasks of the
// same kind never replace each other.
func (s *Store) delay(kind string, d time.Duration, fn func()) {
	s.taskSeq++
	s.sched.AddDelay(taskName(kind, s.taskSeq), d, fn)
}

// Version returns the version of the latest committed state.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Config returns the store tuning.
func (s *Store) Config() Config { return s.cfg }
