package store

import (
	"strings"

	"github.com/kasuganosora/epicadventure/plugin/hook"
	"go.uber.org/zap"
)

// CheckAchievements re-derives progress for locked achievements and unlocks
// those that met their requirement.
func (s *Store) CheckAchievements() bool {
	return s.apply(s.checkAchievements)
}

// checkAchievements loops until no further unlocks happen, since a reward
// can push another counter past its requirement. Unlocked is set before the
// payout so a nested check never pays twice.
func (s *Store) checkAchievements() bool {
	changed := false
	for {
		unlocked := false
		for i := range s.achievements {
			a := &s.achievements[i]
			if a.Unlocked {
				continue
			}
			progress := s.counterFor(a.ID)
			if progress != a.Progress {
				a.Progress = progress
				changed = true
			}
			if progress < a.Requirement {
				continue
			}
			a.Unlocked = true
			unlocked, changed = true, true
			s.gainXP(a.Reward.XP)
			s.player.Gold += a.Reward.Gold
			s.logger.Info("achievement unlocked", zap.String("achievement", a.ID))
			s.emit(hook.OnAchievementUnlock, map[string]interface{}{
				"achievement_id": a.ID,
				"name":           a.Name,
				"xp":             a.Reward.XP,
				"gold":           a.Reward.Gold,
			})
		}
		if !unlocked {
			return changed
		}
	}
}

// counterFor picks the live counter an achievement tracks from its id.
func (s *Store) counterFor(id string) int {
	switch {
	case strings.Contains(id, "pet"):
		return len(s.pets)
	case strings.Contains(id, "quest"):
		return s.counters.QuestsCompleted
	case strings.Contains(id, "dungeon"):
		return s.counters.DungeonsCleared
	case strings.Contains(id, "monster"), strings.Contains(id, "slayer"):
		return s.counters.EnemiesDefeated
	case strings.Contains(id, "wealth"):
		return s.player.Gold
	default:
		return s.player.Level
	}
}
