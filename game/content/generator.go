package content

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/kasuganosora/epicadventure/game/entity"
)

// WorldHalfExtent bounds spawn positions on the X and Z axes.
const WorldHalfExtent = 90.0

// Generator produces random game content scaled by player level.
// It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a Generator seeded with seed. A zero seed picks a
// random one.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *Generator) intN(n int) int { return g.rng.IntN(n) }
func (g *Generator) float() float64 { return g.rng.Float64() }
func (g *Generator) pick(s []string) string { return s[g.intN(len(s))] }

type questTemplate struct {
	title string
	desc  string
	max   int
}

var questKinds = []entity.Objective{
	entity.ObjectiveKill, entity.ObjectiveCollect, entity.ObjectiveExplore, entity.ObjectiveEscort,
	entity.ObjectiveBoss, entity.ObjectivePuzzle, entity.ObjectiveDungeon,
}

// Kinds without their own templates reuse the kill set.
var questTemplates = map[entity.Objective][]questTemplate{
	entity.ObjectiveKill: {
		{"Pest Control", "Defeat {count} {enemy} in the {zone}", 10},
		{"Monster Hunter", "Hunt down {count} dangerous {enemy}", 15},
		{"Clear the Path", "Eliminate {count} {enemy} blocking the road", 8},
		{"Bounty Hunt", "Collect bounty by defeating {count} {enemy}", 12},
	},
	entity.ObjectiveCollect: {
		{"Resource Gathering", "Collect {count} {item} from {zone}", 20},
		{"Rare Materials", "Find {count} rare {item}", 15},
		{"Herb Collection", "Gather {count} medicinal {item}", 25},
	},
	entity.ObjectiveExplore: {
		{"Uncharted Territory", "Discover the hidden {zone}", 1},
		{"Exploration Mission", "Visit {count} different zones", 5},
		{"Ancient Ruins", "Explore the forgotten {zone}", 1},
	},
	entity.ObjectiveBoss: {
		{"Dragon Slayer", "Defeat the legendary {enemy}", 1},
		{"Ultimate Challenge", "Conquer the {enemy} of {zone}", 1},
	},
}

var (
	questEnemies = []string{"Slime", "Goblin", "Wolf", "Orc", "Dragon", "Demon", "Skeleton", "Zombie", "Golem", "Wraith"}
	questItems   = []string{"Herbs", "Crystals", "Ore", "Essence", "Fragments", "Scrolls"}
	questZones   = []string{"Forest", "Mountains", "Desert", "Tundra", "Volcano", "Ocean", "Sky Realm", "Underworld"}
	lootPool     = []string{
		"Health Potion", "Mana Potion", "Elixir", "Ether",
		"Iron Sword", "Steel Armor", "Mythril Shield", "Dragon Scale",
		"Magic Ring", "Amulet of Power", "Lucky Charm", "Ancient Scroll",
		"Crystal Shard", "Gemstone", "Rare Ore", "Enchanted Essence",
	}
)

// Quest generates the seq-th quest for a player of the given level.
func (g *Generator) Quest(playerLevel, seq int) entity.Quest {
	g.mu.Lock()
	defer g.mu.Unlock()

	kind := questKinds[g.intN(len(questKinds))]
	objective := kind
	templates, ok := questTemplates[kind]
	if !ok {
		templates = questTemplates[entity.ObjectiveKill]
		objective = entity.ObjectiveKill
	}
	tpl := templates[g.intN(len(templates))]

	count := int(math.Ceil(float64(tpl.max) * (1 + float64(playerLevel)*0.2)))
	desc := strings.Replace(tpl.desc, "{count}", strconv.Itoa(count), 1)
	desc = strings.Replace(desc, "{enemy}", g.pick(questEnemies), 1)
	desc = strings.Replace(desc, "{item}", g.pick(questItems), 1)
	desc = strings.Replace(desc, "{zone}", g.pick(questZones), 1)

	var qt entity.QuestType
	switch kind {
	case entity.ObjectiveBoss:
		qt = entity.QuestEpic
	case entity.ObjectiveExplore:
		qt = entity.QuestMain
	default:
		if g.float() > 0.5 {
			qt = entity.QuestSide
		} else {
			qt = entity.QuestDaily
		}
	}

	baseXP := 50 + playerLevel*25
	baseGold := 20 + playerLevel*10
	return entity.Quest{
		ID:          fmt.Sprintf("quest-%d-%s", seq, uuid.NewString()[:8]),
		Title:       tpl.title,
		Description: desc,
		Type:        qt,
		Objective:   objective,
		Rewards: entity.Reward{
			XP:    int(float64(baseXP) * (1 + g.float())),
			Gold:  int(float64(baseGold) * (1 + g.float())),
			Items: g.rewardItems(),
		},
		MaxProgress: count,
	}
}

// rewardItems draws 1-3 items from the loot pool. Caller holds g.mu.
func (g *Generator) rewardItems() []string {
	n := 1 + g.intN(3)
	items := make([]string, n)
	for i := range items {
		items[i] = g.pick(lootPool)
	}
	return items
}

type enemyArchetype struct {
	name    string
	attack  int
	defense int
	hp      int
}

// Indexed by player level bracket (level/5), capped at the last entry.
var enemyArchetypes = []enemyArchetype{
	{"Slime", 5, 2, 30},
	{"Goblin", 8, 4, 50},
	{"Wolf", 12, 5, 60},
	{"Orc Warrior", 15, 10, 100},
	{"Dark Mage", 20, 8, 80},
	{"Stone Golem", 18, 20, 150},
	{"Dragon Whelp", 25, 15, 120},
	{"Demon Scout", 30, 12, 100},
	{"Ice Elemental", 22, 10, 90},
	{"Fire Imp", 24, 8, 70},
}

// Enemy generates one enemy near the player's level inside the world bounds.
// The zone is accepted for interface symmetry; archetypes are chosen by
// level bracket only.
func (g *Generator) Enemy(zone string, playerLevel int) entity.Enemy {
	g.mu.Lock()
	defer g.mu.Unlock()

	bracket := playerLevel / 5
	if bracket < 0 {
		bracket = 0
	}
	if bracket > len(enemyArchetypes)-1 {
		bracket = len(enemyArchetypes) - 1
	}
	a := enemyArchetypes[bracket]

	level := playerLevel + g.intN(3) - 1
	if level < 1 {
		level = 1
	}
	x := (g.float() - 0.5) * 2 * WorldHalfExtent
	z := (g.float() - 0.5) * 2 * WorldHalfExtent

	return entity.Enemy{
		ID:         "enemy-" + uuid.NewString(),
		Name:       a.name,
		Type:       a.name,
		Level:      level,
		Health:     a.hp * level,
		MaxHealth:  a.hp * level,
		Attack:     a.attack + level*2,
		Defense:    a.defense + level,
		XPReward:   10 + level*5,
		GoldReward: 5 + level*2,
		Position:   entity.Vec3{x, 1, z},
		Aggressive: g.float() > 0.3,
	}
}

// Pet draws a random pet from the template catalog.
func (g *Generator) Pet() entity.Pet {
	g.mu.Lock()
	t := PetTemplates[g.intN(len(PetTemplates))]
	g.mu.Unlock()

	return entity.Pet{
		ID:        "pet-" + uuid.NewString(),
		Name:      t.Name,
		Type:      t.Type,
		Level:     1,
		Stats:     t.Stats,
		Abilities: append([]string(nil), t.Abilities...),
		Rarity:    t.Rarity,
	}
}

var (
	dungeonNames = []string{
		"Cursed Catacombs", "Tower of Eternity", "Abyssal Depths",
		"Crystal Caverns", "Demon's Lair", "Dragon's Nest",
		"Frozen Fortress", "Volcanic Crater", "Shadow Realm",
		"Ancient Temple", "Sky Citadel", "Underwater Palace",
	}
	dungeonBosses = []string{
		"Ancient Lich", "Crimson Dragon", "Void Demon",
		"Ice Queen", "Fire Lord", "Storm King",
		"Shadow Assassin", "Corrupted Guardian", "Mad Scientist",
	}
)

// Dungeon builds the descriptor for the dungeon at index. Only the reward
// items are random.
func (g *Generator) Dungeon(index int) entity.Dungeon {
	if index < 0 {
		index = 0
	}
	difficulty := 1 + index/3

	g.mu.Lock()
	rewards := g.rewardItems()
	g.mu.Unlock()

	return entity.Dungeon{
		ID:            fmt.Sprintf("dungeon-%d", index),
		Name:          dungeonNames[index%len(dungeonNames)],
		Difficulty:    difficulty,
		Floors:        3 + difficulty*2,
		Boss:          dungeonBosses[index%len(dungeonBosses)],
		Rewards:       rewards,
		RequiredLevel: difficulty * 10,
	}
}
