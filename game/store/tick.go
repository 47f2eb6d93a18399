package store

import "time"

// Tick advances time by dt: cooldowns count down, pools regenerate and a
// moving player earns exploration XP once per full second.
func (s *Store) Tick(dt time.Duration) bool {
	secs := dt.Seconds()
	if secs <= 0 {
		return false
	}
	return s.apply(func() bool {
		changed := false
		for i := range s.skills {
			sk := &s.skills[i]
			if sk.CurrentCooldown > 0 {
				sk.CurrentCooldown = max(0, sk.CurrentCooldown-secs)
				changed = true
			}
		}

		st := &s.player.Stats
		if regen(&st.Mana, st.MaxMana, s.cfg.ManaRegen*secs, &s.regenCarry[0]) {
			changed = true
		}
		if regen(&st.Stamina, st.MaxStamina, s.cfg.StaminaRegen*secs, &s.regenCarry[1]) {
			changed = true
		}
		// the dead wait for their respawn
		if st.Health > 0 && regen(&st.Health, st.MaxHealth, s.cfg.HealthRegen*secs, &s.regenCarry[2]) {
			changed = true
		}

		if s.player.Moving && s.cfg.ExplorationXP > 0 {
			s.exploreCarry += secs
			gained := false
			for s.exploreCarry >= 1 {
				s.exploreCarry--
				if s.gainXP(s.cfg.ExplorationXP) {
					gained = true
				}
			}
			if gained {
				s.checkAchievements()
				changed = true
			}
		} else {
			s.exploreCarry = 0
		}
		return changed
	})
}

// regen adds the whole part of gain plus carry to cur, capped at max. The
// fractional remainder stays in carry.
func regen(cur *int, maxVal int, gain float64, carry *float64) bool {
	if gain <= 0 || *cur >= maxVal {
		*carry = 0
		return false
	}
	*carry += gain
	n := int(*carry)
	if n == 0 {
		return false
	}
	*carry -= float64(n)
	*cur = min(maxVal, *cur+n)
	return true
}
