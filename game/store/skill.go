package store

import (
	"fmt"

	"github.com/kasuganosora/epicadventure/game/content"
	"github.com/kasuganosora/epicadventure/game/entity"
	"github.com/kasuganosora/epicadventure/plugin/hook"
	"go.uber.org/zap"
)

func (s *Store) findSkill(id string) *entity.Skill {
	for i := range s.skills {
		if s.skills[i].ID == id {
			return &s.skills[i]
		}
	}
	return nil
}

func (s *Store) canUse(sk *entity.Skill) bool {
	return sk.Ready() && s.player.Stats.Mana >= sk.ManaCost
}

// CanUseSkill reports whether UseSkill(id) would activate the skill.
func (s *Store) CanUseSkill(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sk := s.findSkill(id)
	return sk != nil && s.canUse(sk)
}

// UseSkill activates a ready skill the player can afford. It is a no-op
// when the skill is unknown, on cooldown, short of mana or vetoed by a
// before_skill_use hook.
func (s *Store) UseSkill(id string) bool {
	s.mu.Lock()
	sk := s.findSkill(id)
	if sk == nil || !s.canUse(sk) {
		s.mu.Unlock()
		s.logger.Debug("skill not usable", zap.String("skill", id))
		return false
	}
	req := map[string]interface{}{
		"skill_id":  sk.ID,
		"name":      sk.Name,
		"mana_cost": sk.ManaCost,
	}
	s.mu.Unlock()

	if s.vetoed(hook.BeforeSkillUse, req) {
		return false
	}

	return s.apply(func() bool {
		// state may have moved on while the hooks ran
		sk := s.findSkill(id)
		if sk == nil || !s.canUse(sk) {
			return false
		}
		s.activate(sk)
		return true
	})
}

func (s *Store) activate(sk *entity.Skill) {
	s.player.Stats.Mana -= sk.ManaCost
	sk.CurrentCooldown = sk.Cooldown
	if sk.Healing > 0 {
		s.heal(sk.Healing)
	}

	var hit, defeated []string
	if sk.Damage > 0 {
		pos := s.player.Position
		for i := range s.enemies {
			e := &s.enemies[i]
			if entity.PlanarDistance(pos, e.Position) > s.cfg.SkillRadius {
				continue
			}
			e.Health = max(0, e.Health-sk.Damage)
			hit = append(hit, e.ID)
			if e.Health == 0 {
				defeated = append(defeated, e.ID)
			}
		}
		for _, id := range defeated {
			s.defeatEnemy(id)
		}
	}

	s.auraGen++
	gen := s.auraGen
	s.auraActive = true
	s.auraColor = sk.AuraColor
	s.delay("aura_clear", s.cfg.AuraDuration, func() { s.clearAura(gen) })

	s.emit(hook.AfterSkillUse, map[string]interface{}{
		"skill_id": sk.ID,
		"name":     sk.Name,
		"effect":   sk.Effect,
		"hit":      hit,
		"defeated": defeated,
	})
}

// clearAura drops the aura flag unless a later activation refreshed it.
func (s *Store) clearAura(gen uint64) {
	s.apply(func() bool {
		if gen != s.auraGen || !s.auraActive {
			return false
		}
		s.auraActive = false
		s.auraColor = ""
		return true
	})
}

// SelectClass switches the player's class, replacing the skill set. The
// combat stats become the class block plus the gains of every level above 1.
func (s *Store) SelectClass(c entity.Class) error {
	info, ok := content.Class(c)
	if !ok {
		return fmt.Errorf("select class %q: %w", c, ErrUnknownClass)
	}
	s.apply(func() bool {
		s.player.Class = c
		s.skills = content.InitializeClassSkills(c)
		st := &s.player.Stats
		n := s.player.Level - 1
		st.Attack = info.StartingStats.Attack + n*levelGain.Attack
		st.Defense = info.StartingStats.Defense + n*levelGain.Defense
		st.Speed = info.StartingStats.Speed + n*levelGain.Speed
		st.Magic = info.StartingStats.Magic + n*levelGain.Magic
		return true
	})
	s.logger.Info("class selected", zap.String("class", string(c)))
	return nil
}

// Skills returns a copy of the current skill set.
func (s *Store) Skills() []entity.Skill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Skill{}, s.skills...)
}
