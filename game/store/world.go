package store

import (
	"slices"
	"strings"

	"github.com/kasuganosora/epicadventure/game/content"
	"github.com/kasuganosora/epicadventure/game/entity"
	"github.com/kasuganosora/epicadventure/plugin/hook"
	"go.uber.org/zap"
)

// AddGold adjusts the purse. Spending more than the player holds is refused.
func (s *Store) AddGold(amount int) bool {
	return s.apply(func() bool {
		if amount == 0 || s.player.Gold+amount < 0 {
			return false
		}
		s.player.Gold += amount
		s.checkAchievements()
		return true
	})
}

// AddItem appends item to the inventory.
func (s *Store) AddItem(item string) bool {
	item = strings.TrimSpace(item)
	if item == "" {
		return false
	}
	return s.apply(func() bool {
		s.player.Inventory = append(s.player.Inventory, item)
		return true
	})
}

// DiscoverZone enters a catalog zone. The first visit marks it discovered
// and advances explore quests.
func (s *Store) DiscoverZone(name string) bool {
	zone, ok := content.ZoneByName(name)
	if !ok {
		return false
	}
	return s.apply(func() bool {
		changed := s.currentZone != zone.Name
		s.currentZone = zone.Name
		if slices.Contains(s.discovered, zone.Name) {
			return changed
		}
		s.discovered = append(s.discovered, zone.Name)
		s.emit(hook.OnZoneDiscover, map[string]interface{}{
			"zone":       zone.Name,
			"biome":      zone.Biome,
			"difficulty": zone.Difficulty,
		})
		s.advanceObjective(entity.ObjectiveExplore)
		return true
	})
}

// ClearDungeon records a cleared dungeon and pays its loot. The player must
// meet the required level and each dungeon pays out once.
func (s *Store) ClearDungeon(index int) (entity.Dungeon, bool) {
	d := s.gen.Dungeon(index)
	ok := s.apply(func() bool {
		if s.player.Level < d.RequiredLevel || slices.Contains(s.cleared, d.ID) {
			return false
		}
		s.cleared = append(s.cleared, d.ID)
		s.counters.DungeonsCleared++
		s.player.Inventory = append(s.player.Inventory, d.Rewards...)
		s.logger.Info("dungeon cleared", zap.String("dungeon", d.ID), zap.String("boss", d.Boss))
		s.emit(hook.OnDungeonClear, map[string]interface{}{
			"dungeon_id": d.ID,
			"name":       d.Name,
			"boss":       d.Boss,
			"rewards":    d.Rewards,
		})
		s.advanceObjective(entity.ObjectiveDungeon)
		s.checkAchievements()
		return true
	})
	return d, ok
}

// UpdatePlayerPosition moves the player.
func (s *Store) UpdatePlayerPosition(pos entity.Vec3) bool {
	return s.apply(func() bool {
		if s.player.Position == pos {
			return false
		}
		s.player.Position = pos
		return true
	})
}

// UpdatePlayerRotation sets the facing angle.
func (s *Store) UpdatePlayerRotation(rotation float64) bool {
	return s.apply(func() bool {
		if s.player.Rotation == rotation {
			return false
		}
		s.player.Rotation = rotation
		return true
	})
}

func (s *Store) SetMoving(moving bool) bool {
	return s.apply(func() bool {
		if s.player.Moving == moving {
			return false
		}
		s.player.Moving = moving
		return true
	})
}

func (s *Store) SetAnimation(animation string) bool {
	return s.apply(func() bool {
		if animation == "" || s.player.Animation == animation {
			return false
		}
		s.player.Animation = animation
		return true
	})
}

// SetPlayerName renames the player. Blank names are ignored.
func (s *Store) SetPlayerName(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	return s.apply(func() bool {
		if s.player.Name == name {
			return false
		}
		s.player.Name = name
		return true
	})
}

// Player returns a copy of the player record.
func (s *Store) Player() entity.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.player
	p.Inventory = append([]string{}, s.player.Inventory...)
	return p
}
