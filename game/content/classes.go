package content

import (
	"fmt"

	"github.com/kasuganosora/epicadventure/game/entity"
)

// StartingStats is the combat block a class starts with.
type StartingStats struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Speed   int `json:"speed"`
	Magic   int `json:"magic"`
}

// ClassInfo describes a playable class.
type ClassInfo struct {
	ID            entity.Class   `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	PrimaryStat   string         `json:"primary_stat"`
	Color         string         `json:"color"`
	StartingStats StartingStats  `json:"starting_stats"`
	Skills        []entity.Skill `json:"skills"`
}

var classData = map[entity.Class]ClassInfo{
	entity.ClassSwordsman: {
		Name:          "Swordsman",
		Description:   "Master of blade and steel. High attack and defense.",
		PrimaryStat:   "Attack",
		Color:         "#ff4444",
		StartingStats: StartingStats{Attack: 20, Defense: 15, Speed: 10, Magic: 5},
		Skills: []entity.Skill{
			{Name: "Blade Rush", Description: "Dash forward with a powerful slash", ManaCost: 10, Cooldown: 3, Damage: 50, AuraColor: "#ff4444"},
			{Name: "Steel Fortress", Description: "Increase defense temporarily", ManaCost: 15, Cooldown: 8, Effect: "defense_boost", AuraColor: "#888888"},
			{Name: "Ultimate Strike", Description: "Devastating sword technique", ManaCost: 30, Cooldown: 15, Damage: 150, AuraColor: "#ffaa00"},
		},
	},
	entity.ClassFireMage: {
		Name:          "Fire Mage",
		Description:   "Wields destructive flames. Master of fire magic.",
		PrimaryStat:   "Magic",
		Color:         "#ff6600",
		StartingStats: StartingStats{Attack: 8, Defense: 8, Speed: 12, Magic: 25},
		Skills: []entity.Skill{
			{Name: "Fireball", Description: "Launch a blazing fireball", ManaCost: 15, Cooldown: 2, Damage: 60, AuraColor: "#ff4400"},
			{Name: "Flame Aura", Description: "Surround yourself with fire", ManaCost: 20, Cooldown: 10, Effect: "fire_aura", AuraColor: "#ff8800"},
			{Name: "Meteor Strike", Description: "Rain fire from the heavens", ManaCost: 40, Cooldown: 20, Damage: 200, AuraColor: "#ff0000"},
		},
	},
	entity.ClassWaterMage: {
		Name:          "Water Mage",
		Description:   "Controls water and ice. Balanced offense and support.",
		PrimaryStat:   "Magic",
		Color:         "#00aaff",
		StartingStats: StartingStats{Attack: 10, Defense: 10, Speed: 10, Magic: 22},
		Skills: []entity.Skill{
			{Name: "Ice Shard", Description: "Launch sharp ice projectiles", ManaCost: 12, Cooldown: 2.5, Damage: 45, AuraColor: "#00ddff"},
			{Name: "Healing Water", Description: "Restore health with magical water", ManaCost: 18, Cooldown: 8, Healing: 50, AuraColor: "#00ffdd"},
			{Name: "Tsunami", Description: "Massive wave of destruction", ManaCost: 35, Cooldown: 18, Damage: 180, AuraColor: "#0088ff"},
		},
	},
	entity.ClassLightMage: {
		Name:          "Light Mage",
		Description:   "Channel holy light. Excellent healer and support.",
		PrimaryStat:   "Magic",
		Color:         "#ffff00",
		StartingStats: StartingStats{Attack: 6, Defense: 12, Speed: 10, Magic: 24},
		Skills: []entity.Skill{
			{Name: "Holy Ray", Description: "Beam of purifying light", ManaCost: 14, Cooldown: 3, Damage: 40, AuraColor: "#ffffff"},
			{Name: "Divine Blessing", Description: "Heal yourself and allies", ManaCost: 20, Cooldown: 6, Healing: 80, AuraColor: "#ffffaa"},
			{Name: "Judgment", Description: "Ultimate holy punishment", ManaCost: 45, Cooldown: 22, Damage: 220, AuraColor: "#ffff00"},
		},
	},
	entity.ClassDarkMage: {
		Name:          "Dark Mage",
		Description:   "Harness shadow magic. High damage and debuffs.",
		PrimaryStat:   "Magic",
		Color:         "#9900ff",
		StartingStats: StartingStats{Attack: 12, Defense: 8, Speed: 14, Magic: 26},
		Skills: []entity.Skill{
			{Name: "Shadow Bolt", Description: "Dark energy projectile", ManaCost: 16, Cooldown: 2, Damage: 55, AuraColor: "#6600aa"},
			{Name: "Life Drain", Description: "Steal enemy life force", ManaCost: 22, Cooldown: 9, Damage: 40, Healing: 40, AuraColor: "#aa00ff"},
			{Name: "Dark Eclipse", Description: "Engulf enemies in darkness", ManaCost: 50, Cooldown: 25, Damage: 250, AuraColor: "#330066"},
		},
	},
	entity.ClassEarthMage: {
		Name:          "Earth Mage",
		Description:   "Command stone and nature. Tank mage with high defense.",
		PrimaryStat:   "Defense",
		Color:         "#885522",
		StartingStats: StartingStats{Attack: 10, Defense: 18, Speed: 6, Magic: 20},
		Skills: []entity.Skill{
			{Name: "Rock Throw", Description: "Hurl a boulder at enemies", ManaCost: 10, Cooldown: 3, Damage: 50, AuraColor: "#aa8855"},
			{Name: "Stone Skin", Description: "Turn your skin to stone", ManaCost: 15, Cooldown: 12, Effect: "stone_skin", AuraColor: "#666666"},
			{Name: "Earthquake", Description: "Shake the earth itself", ManaCost: 38, Cooldown: 20, Damage: 160, AuraColor: "#885522"},
		},
	},
	entity.ClassArcher: {
		Name:          "Archer",
		Description:   "Swift ranged attacker. High speed and precision.",
		PrimaryStat:   "Speed",
		Color:         "#00ff00",
		StartingStats: StartingStats{Attack: 16, Defense: 10, Speed: 20, Magic: 8},
		Skills: []entity.Skill{
			{Name: "Quick Shot", Description: "Rapid arrow attack", ManaCost: 8, Cooldown: 1.5, Damage: 35, AuraColor: "#00ff88"},
			{Name: "Multi-Shot", Description: "Fire multiple arrows", ManaCost: 18, Cooldown: 7, Damage: 80, AuraColor: "#00ff00"},
			{Name: "Arrow Rain", Description: "Shower of deadly arrows", ManaCost: 32, Cooldown: 16, Damage: 170, AuraColor: "#44ff00"},
		},
	},
	entity.ClassHealer: {
		Name:          "Healer",
		Description:   "Support specialist. Keeps allies alive.",
		PrimaryStat:   "Magic",
		Color:         "#ff88ff",
		StartingStats: StartingStats{Attack: 5, Defense: 10, Speed: 12, Magic: 28},
		Skills: []entity.Skill{
			{Name: "Heal", Description: "Restore health", ManaCost: 12, Cooldown: 3, Healing: 60, AuraColor: "#ffaaff"},
			{Name: "Regeneration", Description: "Heal over time", ManaCost: 20, Cooldown: 10, Healing: 100, Effect: "regen", AuraColor: "#ff66ff"},
			{Name: "Mass Resurrection", Description: "Ultimate healing power", ManaCost: 50, Cooldown: 30, Healing: 200, AuraColor: "#ff00ff"},
		},
	},
	entity.ClassSummoner: {
		Name:          "Summoner",
		Description:   "Calls forth magical creatures. Pet specialist.",
		PrimaryStat:   "Magic",
		Color:         "#00ffff",
		StartingStats: StartingStats{Attack: 8, Defense: 10, Speed: 10, Magic: 24},
		Skills: []entity.Skill{
			{Name: "Summon Familiar", Description: "Call a magical companion", ManaCost: 15, Cooldown: 5, Effect: "summon", AuraColor: "#00ffff"},
			{Name: "Pet Power", Description: "Boost pet abilities", ManaCost: 20, Cooldown: 12, Effect: "pet_boost", AuraColor: "#00dddd"},
			{Name: "Ultimate Summon", Description: "Summon a legendary beast", ManaCost: 45, Cooldown: 25, Damage: 190, AuraColor: "#00aaaa"},
		},
	},
}

// Class returns the catalog entry for c.
func Class(c entity.Class) (ClassInfo, bool) {
	info, ok := classData[c]
	if !ok {
		return ClassInfo{}, false
	}
	info.ID = c
	return info, true
}

// AllClasses returns every class in display order.
func AllClasses() []ClassInfo {
	out := make([]ClassInfo, 0, len(entity.Classes))
	for _, c := range entity.Classes {
		info, _ := Class(c)
		out = append(out, info)
	}
	return out
}

// InitializeClassSkills returns fresh, ready-to-use skill instances for c.
// IDs follow the pattern skill-<class>-<index>.
func InitializeClassSkills(c entity.Class) []entity.Skill {
	info, ok := classData[c]
	if !ok {
		return nil
	}
	skills := make([]entity.Skill, len(info.Skills))
	for i, sk := range info.Skills {
		sk.ID = fmt.Sprintf("skill-%s-%d", c, i)
		sk.Class = c
		sk.CurrentCooldown = 0
		skills[i] = sk
	}
	return skills
}
