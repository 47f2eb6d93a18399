package content

import (
	"math"
	"testing"

	"github.com/kasuganosora/epicadventure/game/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuest_ScalesWithLevel(t *testing.T) {
	g := NewGenerator(42)
	for i := 0; i < 200; i++ {
		level := 1 + i%20
		q := g.Quest(level, i)

		require.NotEmpty(t, q.ID)
		assert.NotEmpty(t, q.Title)
		assert.NotContains(t, q.Description, "{count}")
		assert.False(t, q.Completed)
		assert.Zero(t, q.Progress)
		assert.Positive(t, q.MaxProgress)
		assert.Contains(t, []entity.QuestType{entity.QuestMain, entity.QuestSide, entity.QuestDaily, entity.QuestEpic}, q.Type)

		baseXP := 50 + level*25
		baseGold := 20 + level*10
		assert.GreaterOrEqual(t, q.Rewards.XP, baseXP)
		assert.Less(t, q.Rewards.XP, 2*baseXP)
		assert.GreaterOrEqual(t, q.Rewards.Gold, baseGold)
		assert.Less(t, q.Rewards.Gold, 2*baseGold)
		assert.GreaterOrEqual(t, len(q.Rewards.Items), 1)
		assert.LessOrEqual(t, len(q.Rewards.Items), 3)
	}
}

func TestQuest_TypeFollowsObjective(t *testing.T) {
	g := NewGenerator(7)
	for i := 0; i < 300; i++ {
		q := g.Quest(3, i)
		switch q.Type {
		case entity.QuestEpic:
			assert.Equal(t, entity.ObjectiveBoss, q.Objective)
		case entity.QuestMain:
			assert.Equal(t, entity.ObjectiveExplore, q.Objective)
		}
		_, known := questTemplates[q.Objective]
		assert.True(t, known, "objective %q must have templates", q.Objective)
	}
}

func TestQuest_CountFormula(t *testing.T) {
	// Every template max, scaled for level 5, must be one of the valid counts.
	valid := map[int]bool{}
	for _, set := range questTemplates {
		for _, tpl := range set {
			valid[int(math.Ceil(float64(tpl.max)*2))] = true
		}
	}
	g := NewGenerator(1)
	for i := 0; i < 100; i++ {
		q := g.Quest(5, i)
		assert.True(t, valid[q.MaxProgress], "unexpected max progress %d", q.MaxProgress)
	}
}

func TestEnemy_LevelScaling(t *testing.T) {
	g := NewGenerator(99)
	for i := 0; i < 200; i++ {
		e := g.Enemy(StartingZone, 1)
		require.NotEmpty(t, e.ID)
		assert.Equal(t, "Slime", e.Name)
		assert.GreaterOrEqual(t, e.Level, 1)
		assert.LessOrEqual(t, e.Level, 2)
		assert.Equal(t, 30*e.Level, e.MaxHealth)
		assert.Equal(t, e.MaxHealth, e.Health)
		assert.Equal(t, 5+2*e.Level, e.Attack)
		assert.Equal(t, 2+e.Level, e.Defense)
		assert.Equal(t, 10+5*e.Level, e.XPReward)
		assert.Equal(t, 5+2*e.Level, e.GoldReward)
		assert.LessOrEqual(t, math.Abs(e.Position[0]), WorldHalfExtent)
		assert.LessOrEqual(t, math.Abs(e.Position[2]), WorldHalfExtent)
		assert.Equal(t, 1.0, e.Position[1])
	}
}

func TestEnemy_ArchetypeBracketCapped(t *testing.T) {
	g := NewGenerator(3)
	assert.Equal(t, "Goblin", g.Enemy(StartingZone, 5).Name)
	assert.Equal(t, "Fire Imp", g.Enemy(StartingZone, 45).Name)
	assert.Equal(t, "Fire Imp", g.Enemy(StartingZone, 300).Name)
}

func TestPet_FromCatalog(t *testing.T) {
	g := NewGenerator(5)
	names := map[string]bool{}
	for _, tpl := range PetTemplates {
		names[tpl.Name] = true
	}
	p := g.Pet()
	assert.True(t, names[p.Name])
	assert.Equal(t, 1, p.Level)
	assert.Zero(t, p.XP)
	assert.False(t, p.Active)
	assert.Len(t, p.Abilities, 3)

	// Abilities must not alias the catalog.
	p.Abilities[0] = "mutated"
	for _, tpl := range PetTemplates {
		assert.NotEqual(t, "mutated", tpl.Abilities[0])
	}
}

func TestDungeon_Deterministic(t *testing.T) {
	g := NewGenerator(11)
	d := g.Dungeon(0)
	assert.Equal(t, "dungeon-0", d.ID)
	assert.Equal(t, "Cursed Catacombs", d.Name)
	assert.Equal(t, 1, d.Difficulty)
	assert.Equal(t, 5, d.Floors)
	assert.Equal(t, 10, d.RequiredLevel)
	assert.Equal(t, "Ancient Lich", d.Boss)

	d = g.Dungeon(13)
	assert.Equal(t, "Tower of Eternity", d.Name)
	assert.Equal(t, 5, d.Difficulty)
	assert.Equal(t, 13, d.Floors)
	assert.Equal(t, 50, d.RequiredLevel)
	assert.Equal(t, "Fire Lord", d.Boss)
}

func TestInitializeClassSkills(t *testing.T) {
	for _, c := range entity.Classes {
		skills := InitializeClassSkills(c)
		require.Len(t, skills, 3, "class %s", c)
		for i, sk := range skills {
			assert.Equal(t, "skill-"+string(c)+"-"+string(rune('0'+i)), sk.ID)
			assert.Equal(t, c, sk.Class)
			assert.Zero(t, sk.CurrentCooldown)
			assert.Positive(t, sk.Cooldown)
		}
	}
	assert.Nil(t, InitializeClassSkills("bard"))
}

func TestAchievements_FreshCopy(t *testing.T) {
	a := Achievements()
	require.Len(t, a, 10)
	a[0].Unlocked = true
	assert.False(t, Achievements()[0].Unlocked)
}

func TestZoneByName(t *testing.T) {
	z, ok := ZoneByName(StartingZone)
	require.True(t, ok)
	assert.Equal(t, "plains", z.Biome)

	_, ok = ZoneByName("Nowhere")
	assert.False(t, ok)
}
