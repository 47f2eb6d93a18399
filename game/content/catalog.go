package content

import "github.com/kasuganosora/epicadventure/game/entity"

// PetTemplate is a pet archetype; instances get an id, level 1 and 0 XP.
type PetTemplate struct {
	Name      string          `json:"name"`
	Type      string          `json:"type"`
	Stats     entity.PetStats `json:"stats"`
	Abilities []string        `json:"abilities"`
	Rarity    string          `json:"rarity"`
}

// PetTemplates is the fixed pet catalog.
var PetTemplates = []PetTemplate{
	{Name: "Fire Dragon", Type: "dragon", Stats: entity.PetStats{Attack: 25, Defense: 15, Speed: 10, Magic: 30}, Abilities: []string{"Fire Breath", "Wing Buffet", "Intimidate"}, Rarity: "legendary"},
	{Name: "Shadow Wolf", Type: "wolf", Stats: entity.PetStats{Attack: 20, Defense: 10, Speed: 25, Magic: 5}, Abilities: []string{"Shadow Strike", "Pack Howl", "Stealth"}, Rarity: "rare"},
	{Name: "Celestial Phoenix", Type: "phoenix", Stats: entity.PetStats{Attack: 15, Defense: 20, Speed: 20, Magic: 35}, Abilities: []string{"Rebirth", "Heal Aura", "Flame Shield"}, Rarity: "mythic"},
	{Name: "Thunder Tiger", Type: "tiger", Stats: entity.PetStats{Attack: 30, Defense: 12, Speed: 22, Magic: 8}, Abilities: []string{"Lightning Pounce", "Roar", "Claw Fury"}, Rarity: "epic"},
	{Name: "Mystic Unicorn", Type: "unicorn", Stats: entity.PetStats{Attack: 12, Defense: 18, Speed: 18, Magic: 32}, Abilities: []string{"Healing Horn", "Purify", "Mana Surge"}, Rarity: "epic"},
	{Name: "Storm Griffin", Type: "griffin", Stats: entity.PetStats{Attack: 22, Defense: 16, Speed: 24, Magic: 15}, Abilities: []string{"Dive Attack", "Wind Gust", "Eagle Eye"}, Rarity: "rare"},
	{Name: "Spirit Fox", Type: "fox", Stats: entity.PetStats{Attack: 15, Defense: 8, Speed: 30, Magic: 20}, Abilities: []string{"Illusion", "Quick Dash", "Charm"}, Rarity: "rare"},
	{Name: "Wise Owl", Type: "owl", Stats: entity.PetStats{Attack: 10, Defense: 12, Speed: 15, Magic: 28}, Abilities: []string{"Wisdom Boost", "Silent Strike", "Night Vision"}, Rarity: "common"},
	{Name: "Companion Slime", Type: "slime", Stats: entity.PetStats{Attack: 8, Defense: 15, Speed: 12, Magic: 15}, Abilities: []string{"Bounce Attack", "Split", "Absorb"}, Rarity: "common"},
	{Name: "Forest Fairy", Type: "fairy", Stats: entity.PetStats{Attack: 10, Defense: 8, Speed: 28, Magic: 35}, Abilities: []string{"Nature Magic", "Fairy Dust", "Enchant"}, Rarity: "epic"},
}

// StartingZone is where a new player begins.
const StartingZone = "Starter Plains"

// Zones is the fixed zone catalog.
var Zones = []entity.Zone{
	{Name: "Starter Plains", Description: "Peaceful grasslands perfect for beginners", Biome: "plains", Difficulty: 1, Enemies: []string{"Slime", "Rabbit", "Bush Monster"}, Resources: []string{"Grass", "Flowers", "Berries"}, Color: "#90EE90"},
	{Name: "Mystic Forest", Description: "Ancient trees hide magical secrets", Biome: "forest", Difficulty: 3, Enemies: []string{"Treant", "Forest Spirit", "Wild Boar"}, Resources: []string{"Wood", "Mushrooms", "Herbs"}, Color: "#228B22"},
	{Name: "Crystal Peaks", Description: "Towering mountains with glowing crystals", Biome: "mountains", Difficulty: 5, Enemies: []string{"Stone Golem", "Mountain Drake", "Ice Troll"}, Resources: []string{"Crystal", "Iron Ore", "Gold Vein"}, Color: "#4682B4"},
	{Name: "Scorching Dunes", Description: "Endless desert with hidden oases", Biome: "desert", Difficulty: 4, Enemies: []string{"Sand Worm", "Mummy", "Desert Bandit"}, Resources: []string{"Sand Crystal", "Ancient Relic", "Cactus Fruit"}, Color: "#DEB887"},
	{Name: "Frozen Wasteland", Description: "Eternal winter realm of ice and snow", Biome: "ice", Difficulty: 6, Enemies: []string{"Ice Elemental", "Frost Giant", "Snow Yeti"}, Resources: []string{"Ice Shard", "Frozen Core", "Aurora Essence"}, Color: "#B0E0E6"},
	{Name: "Inferno Caldera", Description: "Volcanic realm of fire and molten rock", Biome: "volcano", Difficulty: 7, Enemies: []string{"Lava Serpent", "Fire Elemental", "Magma Titan"}, Resources: []string{"Obsidian", "Flame Crystal", "Molten Core"}, Color: "#FF4500"},
	{Name: "Azure Depths", Description: "Underwater kingdom of coral and mystery", Biome: "ocean", Difficulty: 5, Enemies: []string{"Sea Serpent", "Kraken", "Siren"}, Resources: []string{"Pearl", "Coral", "Trident Fragment"}, Color: "#1E90FF"},
	{Name: "Celestial Isles", Description: "Floating islands among the clouds", Biome: "sky", Difficulty: 8, Enemies: []string{"Sky Pirate", "Cloud Dragon", "Thunder Bird"}, Resources: []string{"Star Fragment", "Cloud Essence", "Wind Crystal"}, Color: "#87CEEB"},
	{Name: "Prismatic Caverns", Description: "Underground caves filled with rainbow crystals", Biome: "crystal", Difficulty: 6, Enemies: []string{"Crystal Golem", "Gem Spider", "Prism Wraith"}, Resources: []string{"Rainbow Crystal", "Diamond", "Mana Stone"}, Color: "#FF69B4"},
	{Name: "Void Realm", Description: "Dark dimension where reality bends", Biome: "shadow", Difficulty: 10, Enemies: []string{"Shadow Demon", "Void Walker", "Dark Lord"}, Resources: []string{"Dark Matter", "Void Crystal", "Shadow Essence"}, Color: "#2F4F4F"},
}

// ZoneByName looks a zone up in the catalog.
func ZoneByName(name string) (entity.Zone, bool) {
	for _, z := range Zones {
		if z.Name == name {
			return z, true
		}
	}
	return entity.Zone{}, false
}

// Achievements returns a fresh copy of the achievement catalog with all
// progress zeroed.
func Achievements() []entity.Achievement {
	out := make([]entity.Achievement, len(achievements))
	copy(out, achievements)
	return out
}

var achievements = []entity.Achievement{
	{ID: "first-steps", Name: "First Steps", Description: "Reach level 5", Requirement: 5, Reward: entity.AchievementReward{XP: 100, Gold: 50}},
	{ID: "apprentice", Name: "Apprentice", Description: "Reach level 10", Requirement: 10, Reward: entity.AchievementReward{XP: 500, Gold: 200}},
	{ID: "veteran", Name: "Veteran", Description: "Reach level 25", Requirement: 25, Reward: entity.AchievementReward{XP: 2000, Gold: 1000}},
	{ID: "master", Name: "Master", Description: "Reach level 50", Requirement: 50, Reward: entity.AchievementReward{XP: 10000, Gold: 5000}},
	{ID: "legend", Name: "Legend", Description: "Reach level 100", Requirement: 100, Reward: entity.AchievementReward{XP: 50000, Gold: 25000}},
	{ID: "pet-collector", Name: "Pet Collector", Description: "Collect 10 pets", Requirement: 10, Reward: entity.AchievementReward{XP: 1000, Gold: 500}},
	{ID: "quest-master", Name: "Quest Master", Description: "Complete 100 quests", Requirement: 100, Reward: entity.AchievementReward{XP: 5000, Gold: 2500}},
	{ID: "dungeon-delver", Name: "Dungeon Delver", Description: "Clear 10 dungeons", Requirement: 10, Reward: entity.AchievementReward{XP: 3000, Gold: 1500}},
	{ID: "monster-slayer", Name: "Monster Slayer", Description: "Defeat 1000 enemies", Requirement: 1000, Reward: entity.AchievementReward{XP: 10000, Gold: 5000}},
	{ID: "wealthy", Name: "Wealthy", Description: "Accumulate 100,000 gold", Requirement: 100000, Reward: entity.AchievementReward{XP: 5000, Gold: 10000}},
}

// TutorialStep is one onboarding hint.
type TutorialStep struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var TutorialSteps = []TutorialStep{
	{ID: "movement", Title: "Movement", Description: "Use WASD or Arrow keys to move your character around the world."},
	{ID: "jump", Title: "Jumping", Description: "Press SPACE to jump over obstacles and explore vertical spaces."},
	{ID: "skills", Title: "Using Skills", Description: "Press keys 1-4 to use your class abilities. Watch your mana!"},
	{ID: "combat", Title: "Combat Basics", Description: "Approach enemies to engage in combat. Use skills strategically!"},
	{ID: "quests", Title: "Quests", Description: "Talk to NPCs to receive quests. Complete them for rewards!"},
	{ID: "pets", Title: "Pet System", Description: "Collect and summon pets to fight alongside you!"},
	{ID: "crafting", Title: "Crafting", Description: "Gather materials and visit the blacksmith to craft items."},
	{ID: "dungeons", Title: "Dungeons", Description: "Challenge dungeons for epic loot and face powerful bosses!"},
}

// NPC is a static villager.
type NPC struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Role     string      `json:"role"`
	Dialogue []string    `json:"dialogue"`
	Position entity.Vec3 `json:"position"`
}

var NPCs = []NPC{
	{ID: "npc-elder", Name: "Village Elder", Role: "quest-giver", Position: entity.Vec3{10, 0, 10}, Dialogue: []string{
		"Welcome, brave adventurer!",
		"Our village needs your help.",
		"Monsters have been causing trouble lately...",
		"Will you aid us in our time of need?",
	}},
	{ID: "npc-merchant", Name: "Traveling Merchant", Role: "merchant", Position: entity.Vec3{15, 0, 5}, Dialogue: []string{
		"Care to browse my wares?",
		"I have potions, equipment, and more!",
		"Special discount for heroes like you!",
	}},
	{ID: "npc-blacksmith", Name: "Master Blacksmith", Role: "blacksmith", Position: entity.Vec3{-10, 0, 15}, Dialogue: []string{
		"Need your equipment upgraded?",
		"I can forge the finest weapons!",
		"Bring me materials and I'll craft something amazing.",
	}},
	{ID: "npc-trainer", Name: "Skill Trainer", Role: "trainer", Position: entity.Vec3{-15, 0, -10}, Dialogue: []string{
		"Want to learn new abilities?",
		"I can teach you powerful techniques!",
		"Mastery comes with practice, young one.",
	}},
}

// Material is one recipe ingredient.
type Material struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Recipe is a crafting recipe.
type Recipe struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Materials []Material `json:"materials"`
	Result    string     `json:"result"`
	Category  string     `json:"category"`
}

var Recipes = []Recipe{
	{ID: "iron-sword", Name: "Iron Sword", Materials: []Material{{"Iron Ore", 5}, {"Wood", 2}}, Result: "Iron Sword", Category: "weapon"},
	{ID: "steel-armor", Name: "Steel Armor", Materials: []Material{{"Steel Ingot", 8}, {"Leather", 4}}, Result: "Steel Armor", Category: "armor"},
	{ID: "health-potion", Name: "Health Potion", Materials: []Material{{"Herbs", 3}, {"Crystal", 1}}, Result: "Health Potion", Category: "potion"},
	{ID: "mana-potion", Name: "Mana Potion", Materials: []Material{{"Mana Essence", 2}, {"Crystal", 1}}, Result: "Mana Potion", Category: "potion"},
}
