package store

import (
	"github.com/kasuganosora/epicadventure/game/entity"
	"github.com/kasuganosora/epicadventure/plugin/hook"
	"go.uber.org/zap"
)

// levelGain is what every level-up adds to the stat maximums.
var levelGain = entity.Stats{
	MaxHealth: 20, MaxMana: 10, MaxStamina: 15,
	Attack: 3, Defense: 2, Speed: 1, Magic: 2, Luck: 1,
}

// GainXP adds amount to the player's XP. Crossing the threshold resolves
// exactly one level-up and carries the overflow, even when the overflow
// exceeds the new threshold.
func (s *Store) GainXP(amount int) bool {
	return s.apply(func() bool {
		if !s.gainXP(amount) {
			return false
		}
		s.checkAchievements()
		return true
	})
}

func (s *Store) gainXP(amount int) bool {
	if amount <= 0 {
		return false
	}
	p := &s.player
	total := p.XP + amount
	if total < p.XPToNext {
		p.XP = total
		return true
	}
	overflow := total - p.XPToNext
	s.levelUp()
	p.XP = overflow
	return true
}

// LevelUp advances the player one level and fully restores the pools.
func (s *Store) LevelUp() bool {
	return s.apply(func() bool {
		s.levelUp()
		return true
	})
}

func (s *Store) levelUp() {
	p := &s.player
	p.Level++
	p.XP = 0
	p.XPToNext = p.XPToNext * 3 / 2

	st := &p.Stats
	st.MaxHealth += levelGain.MaxHealth
	st.MaxMana += levelGain.MaxMana
	st.MaxStamina += levelGain.MaxStamina
	st.Attack += levelGain.Attack
	st.Defense += levelGain.Defense
	st.Speed += levelGain.Speed
	st.Magic += levelGain.Magic
	st.Luck += levelGain.Luck
	st.Health = st.MaxHealth
	st.Mana = st.MaxMana
	st.Stamina = st.MaxStamina

	s.logger.Info("player leveled up", zap.Int("level", p.Level), zap.Int("xp_to_next", p.XPToNext))
	s.emit(hook.OnPlayerLevelUp, map[string]interface{}{
		"level":      p.Level,
		"xp_to_next": p.XPToNext,
		"max_health": st.MaxHealth,
	})
}

// HealPlayer restores health, capped at the maximum.
func (s *Store) HealPlayer(amount int) bool {
	return s.apply(func() bool { return s.heal(amount) })
}

func (s *Store) heal(amount int) bool {
	st := &s.player.Stats
	if amount <= 0 || st.Health >= st.MaxHealth {
		return false
	}
	st.Health = min(st.MaxHealth, st.Health+amount)
	return true
}

// TakeDamage applies incoming damage reduced by defense, never less than 1.
// Reaching zero health schedules a respawn.
func (s *Store) TakeDamage(amount int) bool {
	return s.apply(func() bool { return s.takeDamage(amount) })
}

func (s *Store) takeDamage(amount int) bool {
	st := &s.player.Stats
	if st.Health <= 0 {
		return false
	}
	dmg := max(1, max(0, amount)-st.Defense)
	st.Health = max(0, st.Health-dmg)
	if st.Health == 0 {
		s.die()
	}
	return true
}

func (s *Store) die() {
	s.deathGen++
	gen := s.deathGen
	s.logger.Info("player died", zap.Uint64("death_gen", gen))
	s.emit(hook.OnPlayerDeath, map[string]interface{}{
		"level":    s.player.Level,
		"position": s.player.Position,
	})
	s.delay("respawn", s.cfg.RespawnDelay, func() { s.respawn(gen) })
}

// respawn restores a dead player at the origin. It is dropped when the player
// was revived in the meantime or died again since it was scheduled.
func (s *Store) respawn(gen uint64) {
	s.apply(func() bool {
		if gen != s.deathGen || s.player.Stats.Health != 0 {
			s.logger.Debug("stale respawn dropped", zap.Uint64("death_gen", gen))
			return false
		}
		st := &s.player.Stats
		st.Health = st.MaxHealth
		st.Mana = st.MaxMana
		st.Stamina = st.MaxStamina
		s.player.Position = entity.Vec3{}
		s.emit(hook.OnPlayerRespawn, map[string]interface{}{"level": s.player.Level})
		return true
	})
}
