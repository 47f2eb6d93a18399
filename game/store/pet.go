package store

import (
	"github.com/kasuganosora/epicadventure/game/entity"
	"github.com/kasuganosora/epicadventure/plugin/hook"
)

// AddPet adds p to the collection. An incoming active pet takes over the
// active slot.
func (s *Store) AddPet(p entity.Pet) bool {
	return s.apply(func() bool { return s.addPet(p) })
}

func (s *Store) addPet(p entity.Pet) bool {
	if p.ID == "" {
		return false
	}
	for _, existing := range s.pets {
		if existing.ID == p.ID {
			return false
		}
	}
	p.Abilities = append([]string{}, p.Abilities...)
	if p.Active {
		for i := range s.pets {
			s.pets[i].Active = false
		}
	}
	s.pets = append(s.pets, p)
	s.checkAchievements()
	return true
}

// GeneratePet draws a random pet and adds it.
func (s *Store) GeneratePet() entity.Pet {
	var p entity.Pet
	s.apply(func() bool {
		p = s.gen.Pet()
		return s.addPet(p)
	})
	return p
}

// SetActivePet makes the pet with id the only active one. An id that matches
// nothing leaves every pet inactive.
func (s *Store) SetActivePet(id string) bool {
	return s.apply(func() bool {
		changed := false
		var active *entity.Pet
		for i := range s.pets {
			p := &s.pets[i]
			want := p.ID == id
			if p.Active != want {
				p.Active = want
				changed = true
			}
			if want {
				active = p
			}
		}
		if active != nil && changed {
			s.emit(hook.OnPetActivate, map[string]interface{}{
				"pet_id": active.ID,
				"name":   active.Name,
				"rarity": active.Rarity,
			})
		}
		return changed
	})
}
