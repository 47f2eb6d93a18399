package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kasuganosora/epicadventure/game/entity"
	"github.com/kasuganosora/epicadventure/plugin/hook"
	"github.com/kasuganosora/epicadventure/scheduler"
	"go.uber.org/zap"
)

// manualScheduler queues delayed tasks until the test runs them.
type manualScheduler struct {
	mu    sync.Mutex
	names []string
	tasks []scheduler.TaskFn
}

func (m *manualScheduler) AddDelay(name string, _ time.Duration, fn scheduler.TaskFn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names = append(m.names, name)
	m.tasks = append(m.tasks, fn)
}

func (m *manualScheduler) Pending() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.names...)
}

// RunNext fires the oldest pending task.
func (m *manualScheduler) RunNext() bool {
	m.mu.Lock()
	if len(m.tasks) == 0 {
		m.mu.Unlock()
		return false
	}
	fn := m.tasks[0]
	m.tasks, m.names = m.tasks[1:], m.names[1:]
	m.mu.Unlock()
	fn()
	return true
}

// RunPending fires every queued task, including ones queued while running.
func (m *manualScheduler) RunPending() int {
	n := 0
	for m.RunNext() {
		n++
	}
	return n
}

// stubGenerator hands out predictable content.
type stubGenerator struct {
	n         int
	enemyPos  []entity.Vec3
	questKind entity.Objective
}

func (g *stubGenerator) Enemy(zone string, level int) entity.Enemy {
	g.n++
	e := entity.Enemy{
		ID: fmt.Sprintf("e%d", g.n), Name: "Slime", Type: "Slime", Level: level,
		Health: 30, MaxHealth: 30, Attack: 8, Defense: 2,
		XPReward: 15, GoldReward: 7,
	}
	if len(g.enemyPos) > 0 {
		e.Position = g.enemyPos[0]
		g.enemyPos = g.enemyPos[1:]
	}
	return e
}

func (g *stubGenerator) Quest(level, seq int) entity.Quest {
	kind := g.questKind
	if kind == "" {
		kind = entity.ObjectiveKill
	}
	return entity.Quest{
		ID: fmt.Sprintf("quest-%d", seq), Title: "Pest Control", Type: entity.QuestSide,
		Objective: kind, MaxProgress: 3,
		Rewards: entity.Reward{XP: 50 + 25*level, Gold: 20, Items: []string{"Elixir"}},
	}
}

func (g *stubGenerator) Pet() entity.Pet {
	g.n++
	return entity.Pet{ID: fmt.Sprintf("pet%d", g.n), Name: "Spirit Fox", Type: "fox", Level: 1, Abilities: []string{"Illusion"}, Rarity: "rare"}
}

func (g *stubGenerator) Dungeon(index int) entity.Dungeon {
	difficulty := 1 + index/3
	return entity.Dungeon{
		ID: fmt.Sprintf("dungeon-%d", index), Name: "Cursed Catacombs", Difficulty: difficulty,
		Floors: 3 + 2*difficulty, Boss: "Ancient Lich", Rewards: []string{"Gemstone"},
		RequiredLevel: 10 * difficulty,
	}
}

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) handle(_ context.Context, event string, data interface{}) (interface{}, error) {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
	return data, nil
}

func (r *recorder) count(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

type versionLog struct {
	versions []uint64
}

func (v *versionLog) PublishSnapshot(snap *Snapshot) {
	v.versions = append(v.versions, snap.Version)
}

type fixture struct {
	store *Store
	sched *manualScheduler
	gen   *stubGenerator
	hooks *hook.HookCenter
	rec   *recorder
	pub   *versionLog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sched: &manualScheduler{},
		gen:   &stubGenerator{},
		hooks: hook.NewHookCenter(),
		rec:   &recorder{},
		pub:   &versionLog{},
	}
	f.hooks.RegisterAll(hook.Notifications, 0, "recorder", f.rec.handle)
	f.store = New(DefaultConfig(), f.gen, f.sched, f.hooks, f.pub, zap.NewNop())
	return f
}

func pendingOfKind(names []string, kind string) int {
	n := 0
	for _, name := range names {
		if strings.HasPrefix(name, kind+":") {
			n++
		}
	}
	return n
}
