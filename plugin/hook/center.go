package hook

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrInterrupt signals that a handler wants to stop further processing.
// Returned from a Before* event it vetoes the action.
var ErrInterrupt = errors.New("hook interrupted")

// HookFn is a hook handler function.
// Returns (modified data, nil) to continue, or (data, ErrInterrupt) to stop.
type HookFn func(ctx context.Context, event string, data interface{}) (interface{}, error)

type hookEntry struct {
	priority int
	fn       HookFn
	name     string
}

// HookCenter dispatches game events to registered handlers.
type HookCenter struct {
	mu    sync.RWMutex
	hooks map[string][]*hookEntry
}

// NewHookCenter creates an empty HookCenter.
func NewHookCenter() *HookCenter {
	return &HookCenter{hooks: make(map[string][]*hookEntry)}
}

// Register adds fn for event. Lower priority runs first; handlers with equal
// priority run in registration order.
func (hc *HookCenter) Register(event string, priority int, name string, fn HookFn) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	entries := append(hc.hooks[event], &hookEntry{priority: priority, fn: fn, name: name})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].priority < entries[j].priority
	})
	hc.hooks[event] = entries
}

// RegisterAll adds the same handler for several events.
func (hc *HookCenter) RegisterAll(events []string, priority int, name string, fn HookFn) {
	for _, ev := range events {
		hc.Register(ev, priority, name, fn)
	}
}

// UnregisterAll removes all hooks registered with the given name across all events.
func (hc *HookCenter) UnregisterAll(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	for event, entries := range hc.hooks {
		hc.hooks[event] = without(entries, name)
	}
}

func without(entries []*hookEntry, name string) []*hookEntry {
	n := 0
	for _, e := range entries {
		if e.name != name {
			entries[n] = e
			n++
		}
	}
	return entries[:n]
}

// Count returns how many handlers are registered for event.
func (hc *HookCenter) Count(event string) int {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return len(hc.hooks[event])
}

// Trigger executes all registered hooks for event in priority order.
// Data flows through each handler, allowing modification.
// If any handler returns ErrInterrupt, execution stops. Other errors are
// joined and returned after every handler has run.
func (hc *HookCenter) Trigger(ctx context.Context, event string, data interface{}) (interface{}, error) {
	hc.mu.RLock()
	entries := make([]*hookEntry, len(hc.hooks[event]))
	copy(entries, hc.hooks[event])
	hc.mu.RUnlock()

	var errs []error
	for _, e := range entries {
		out, err := e.fn(ctx, event, data)
		if errors.Is(err, ErrInterrupt) {
			return out, err
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		data = out
	}
	return data, errors.Join(errs...)
}

// Game event names.
const (
	BeforeSkillUse      = "before_skill_use"
	AfterSkillUse       = "after_skill_use"
	OnPlayerLevelUp     = "on_player_level_up"
	OnPlayerDeath       = "on_player_death"
	OnPlayerRespawn     = "on_player_respawn"
	AfterEnemyDefeat    = "after_enemy_defeat"
	OnQuestComplete     = "on_quest_complete"
	OnAchievementUnlock = "on_achievement_unlock"
	OnZoneDiscover      = "on_zone_discover"
	OnPetActivate       = "on_pet_activate"
	OnDungeonClear      = "on_dungeon_clear"
)

// Notifications lists every event that is announced after a committed state
// change (everything except the Before* veto points).
var Notifications = []string{
	AfterSkillUse, OnPlayerLevelUp, OnPlayerDeath, OnPlayerRespawn,
	AfterEnemyDefeat, OnQuestComplete, OnAchievementUnlock,
	OnZoneDiscover, OnPetActivate, OnDungeonClear,
}
