package store

import (
	"strconv"

	"github.com/kasuganosora/epicadventure/game/entity"
)

// Snapshot is an immutable copy of the game state at one Version.
type Snapshot struct {
	Version         uint64               `json:"version"`
	Player          entity.Player        `json:"player"`
	Skills          []entity.Skill       `json:"skills"`
	Pets            []entity.Pet         `json:"pets"`
	ActivePet       *entity.Pet          `json:"active_pet,omitempty"`
	Enemies         []entity.Enemy       `json:"enemies"`
	Quests          []entity.Quest       `json:"quests"`
	Achievements    []entity.Achievement `json:"achievements"`
	CurrentZone     string               `json:"current_zone"`
	DiscoveredZones []string             `json:"discovered_zones"`
	ClearedDungeons []string             `json:"cleared_dungeons"`
	Counters        Counters             `json:"counters"`
	AuraActive      bool                 `json:"aura_active"`
	AuraColor       string               `json:"aura_color,omitempty"`
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		Version:         s.version,
		Player:          s.player,
		Skills:          append([]entity.Skill{}, s.skills...),
		Pets:            make([]entity.Pet, len(s.pets)),
		Enemies:         append([]entity.Enemy{}, s.enemies...),
		Quests:          make([]entity.Quest, len(s.quests)),
		Achievements:    append([]entity.Achievement{}, s.achievements...),
		CurrentZone:     s.currentZone,
		DiscoveredZones: append([]string{}, s.discovered...),
		ClearedDungeons: append([]string{}, s.cleared...),
		Counters:        s.counters,
		AuraActive:      s.auraActive,
		AuraColor:       s.auraColor,
	}
	snap.Player.Inventory = append([]string{}, s.player.Inventory...)
	for i, p := range s.pets {
		p.Abilities = append([]string{}, p.Abilities...)
		snap.Pets[i] = p
		if p.Active {
			snap.ActivePet = &snap.Pets[i]
		}
	}
	for i, q := range s.quests {
		q.Rewards.Items = append([]string{}, q.Rewards.Items...)
		snap.Quests[i] = q
	}
	return snap
}

func taskName(kind string, seq uint64) string {
	return kind + ":" + strconv.FormatUint(seq, 10)
}
