package entity

import "math"

// Class identifies one of the playable classes.
type Class string

const (
	ClassSwordsman Class = "swordsman"
	ClassFireMage  Class = "fire-mage"
	ClassWaterMage Class = "water-mage"
	ClassLightMage Class = "light-mage"
	ClassDarkMage  Class = "dark-mage"
	ClassEarthMage Class = "earth-mage"
	ClassArcher    Class = "archer"
	ClassHealer    Class = "healer"
	ClassSummoner  Class = "summoner"
)

// Classes lists every playable class in display order.
var Classes = []Class{
	ClassSwordsman, ClassFireMage, ClassWaterMage, ClassLightMage, ClassDarkMage,
	ClassEarthMage, ClassArcher, ClassHealer, ClassSummoner,
}

// Valid reports whether c is one of the known classes.
func (c Class) Valid() bool {
	for _, k := range Classes {
		if k == c {
			return true
		}
	}
	return false
}

// Vec3 is a world position (x, y, z). Y is the vertical axis.
type Vec3 [3]float64

// PlanarDistance returns the distance between a and b on the XZ plane.
func PlanarDistance(a, b Vec3) float64 {
	return math.Hypot(a[0]-b[0], a[2]-b[2])
}

// Stats is the player's stat block. Health, Mana and Stamina are pools
// bounded by their Max counterparts.
type Stats struct {
	Health     int `json:"health"`
	MaxHealth  int `json:"max_health"`
	Mana       int `json:"mana"`
	MaxMana    int `json:"max_mana"`
	Stamina    int `json:"stamina"`
	MaxStamina int `json:"max_stamina"`
	Attack     int `json:"attack"`
	Defense    int `json:"defense"`
	Speed      int `json:"speed"`
	Magic      int `json:"magic"`
	Luck       int `json:"luck"`
}

// Player is the singleton player record.
type Player struct {
	Name      string   `json:"name"`
	Class     Class    `json:"class"`
	Level     int      `json:"level"`
	XP        int      `json:"xp"`
	XPToNext  int      `json:"xp_to_next"`
	Stats     Stats    `json:"stats"`
	Position  Vec3     `json:"position"`
	Rotation  float64  `json:"rotation"`
	Moving    bool     `json:"moving"`
	Animation string   `json:"animation"`
	Gold      int      `json:"gold"`
	Inventory []string `json:"inventory"`
}

// Skill is a class ability. CurrentCooldown counts down in seconds.
type Skill struct {
	ID              string  `json:"id"`
	Class           Class   `json:"class"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	ManaCost        int     `json:"mana_cost"`
	Cooldown        float64 `json:"cooldown"`
	Damage          int     `json:"damage,omitempty"`
	Healing         int     `json:"healing,omitempty"`
	Effect          string  `json:"effect,omitempty"`
	AuraColor       string  `json:"aura_color"`
	CurrentCooldown float64 `json:"current_cooldown"`
}

// Ready reports whether the skill is off cooldown.
func (s *Skill) Ready() bool { return s.CurrentCooldown <= 0 }

// PetStats is a pet's combat block.
type PetStats struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Speed   int `json:"speed"`
	Magic   int `json:"magic"`
}

// Pet is a collected companion.
type Pet struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Level     int      `json:"level"`
	XP        int      `json:"xp"`
	Stats     PetStats `json:"stats"`
	Abilities []string `json:"abilities"`
	Rarity    string   `json:"rarity"`
	Active    bool     `json:"active"`
}

// Enemy is a live combat entity.
type Enemy struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Level      int    `json:"level"`
	Health     int    `json:"health"`
	MaxHealth  int    `json:"max_health"`
	Attack     int    `json:"attack"`
	Defense    int    `json:"defense"`
	XPReward   int    `json:"xp_reward"`
	GoldReward int    `json:"gold_reward"`
	Position   Vec3   `json:"position"`
	Aggressive bool   `json:"aggressive"`
}

// QuestType is the quest log category.
type QuestType string

const (
	QuestMain  QuestType = "main"
	QuestSide  QuestType = "side"
	QuestDaily QuestType = "daily"
	QuestEpic  QuestType = "epic"
)

// Objective is what a quest asks the player to do.
type Objective string

const (
	ObjectiveKill    Objective = "kill"
	ObjectiveCollect Objective = "collect"
	ObjectiveExplore Objective = "explore"
	ObjectiveEscort  Objective = "escort"
	ObjectiveBoss    Objective = "boss"
	ObjectivePuzzle  Objective = "puzzle"
	ObjectiveDungeon Objective = "dungeon"
)

// Reward is a quest reward bundle.
type Reward struct {
	XP    int      `json:"xp"`
	Gold  int      `json:"gold"`
	Items []string `json:"items"`
}

// Quest is an entry in the quest log. Progress stays in [0, MaxProgress]
// and Completed implies Progress == MaxProgress.
type Quest struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        QuestType `json:"type"`
	Objective   Objective `json:"objective"`
	Rewards     Reward    `json:"rewards"`
	Progress    int       `json:"progress"`
	MaxProgress int       `json:"max_progress"`
	Completed   bool      `json:"completed"`
}

// AchievementReward is paid once when an achievement unlocks.
type AchievementReward struct {
	XP   int `json:"xp"`
	Gold int `json:"gold"`
}

// Achievement tracks a milestone. Progress is derived from live counters;
// Unlocked never goes back to false.
type Achievement struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Requirement int               `json:"requirement"`
	Progress    int               `json:"progress"`
	Unlocked    bool              `json:"unlocked"`
	Reward      AchievementReward `json:"reward"`
}

// Zone is a static world region descriptor.
type Zone struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Biome       string   `json:"biome"`
	Difficulty  int      `json:"difficulty"`
	Enemies     []string `json:"enemies"`
	Resources   []string `json:"resources"`
	Color       string   `json:"color"`
}

// Dungeon is a generated dungeon descriptor.
type Dungeon struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Difficulty    int      `json:"difficulty"`
	Floors        int      `json:"floors"`
	Boss          string   `json:"boss"`
	Rewards       []string `json:"rewards"`
	RequiredLevel int      `json:"required_level"`
}
