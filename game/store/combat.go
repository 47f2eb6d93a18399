package store

import (
	"github.com/kasuganosora/epicadventure/game/entity"
	"github.com/kasuganosora/epicadventure/plugin/hook"
	"go.uber.org/zap"
)

func (s *Store) enemyIndex(id string) int {
	for i := range s.enemies {
		if s.enemies[i].ID == id {
			return i
		}
	}
	return -1
}

// SpawnEnemies adds count generated enemies for the current zone and level.
func (s *Store) SpawnEnemies(count int) bool {
	if count <= 0 {
		return false
	}
	return s.apply(func() bool {
		for i := 0; i < count; i++ {
			s.enemies = append(s.enemies, s.gen.Enemy(s.currentZone, s.player.Level))
		}
		s.logger.Debug("enemies spawned", zap.Int("count", count), zap.String("zone", s.currentZone))
		return true
	})
}

// RefillEnemies tops the active set back up to target once fewer than half
// of target remain.
func (s *Store) RefillEnemies(target int) bool {
	return s.apply(func() bool {
		if target <= 0 || 2*len(s.enemies) >= target {
			return false
		}
		n := target - len(s.enemies)
		for i := 0; i < n; i++ {
			s.enemies = append(s.enemies, s.gen.Enemy(s.currentZone, s.player.Level))
		}
		s.logger.Debug("enemies refilled", zap.Int("count", n), zap.String("zone", s.currentZone))
		return true
	})
}

// EnemyCount returns the size of the active enemy set.
func (s *Store) EnemyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.enemies)
}

// AttackEnemy strikes the enemy with the player's attack. A survivor hits
// back after the counterattack delay.
func (s *Store) AttackEnemy(id string) bool {
	return s.apply(func() bool {
		idx := s.enemyIndex(id)
		if idx < 0 {
			return false
		}
		e := &s.enemies[idx]
		e.Health = max(0, e.Health-s.player.Stats.Attack)
		if e.Health == 0 {
			s.defeatEnemy(id)
			return true
		}
		gen := s.deathGen
		s.delay("counterattack:"+id, s.cfg.CounterattackDelay, func() { s.counterattack(id, gen) })
		return true
	})
}

// counterattack lands only if the enemy is still alive and the player has
// not died since the attack that provoked it.
func (s *Store) counterattack(id string, gen uint64) {
	s.apply(func() bool {
		if gen != s.deathGen {
			return false
		}
		idx := s.enemyIndex(id)
		if idx < 0 {
			return false
		}
		return s.takeDamage(s.enemies[idx].Attack)
	})
}

// DefeatEnemy removes the enemy and pays its rewards. Unknown ids, including
// already defeated ones, are ignored.
func (s *Store) DefeatEnemy(id string) bool {
	return s.apply(func() bool { return s.defeatEnemy(id) })
}

func (s *Store) defeatEnemy(id string) bool {
	idx := s.enemyIndex(id)
	if idx < 0 {
		return false
	}
	e := s.enemies[idx]
	s.enemies = append(s.enemies[:idx:idx], s.enemies[idx+1:]...)

	s.counters.EnemiesDefeated++
	s.gainXP(e.XPReward)
	s.player.Gold += e.GoldReward
	s.emit(hook.AfterEnemyDefeat, map[string]interface{}{
		"enemy_id": e.ID,
		"name":     e.Name,
		"level":    e.Level,
		"xp":       e.XPReward,
		"gold":     e.GoldReward,
	})

	s.advanceObjective(entity.ObjectiveKill)
	s.checkAchievements()
	return true
}
