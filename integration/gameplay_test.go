package integration

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/kasuganosora/epicadventure/game/entity"
	"github.com/kasuganosora/epicadventure/game/store"
	"github.com/kasuganosora/epicadventure/model"
	"github.com/kasuganosora/epicadventure/plugin/hook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	ts := NewTestServer(t)
	resp := ts.Get(t, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", ReadJSON(t, resp)["status"])
}

func TestCombat_FightToDefeat(t *testing.T) {
	ts := NewTestServer(t)
	token := ts.Login(t, "Aria")
	stream := ts.ConnectSSE(t, token)

	require.True(t, Applied(t, ts.PostJSON(t, "/api/enemies/spawn", map[string]int{"count": 1}, token)))
	snap := ts.Store.Snapshot()
	require.Len(t, snap.Enemies, 1)
	enemy := snap.Enemies[0]

	path := fmt.Sprintf("/api/enemies/%s/attack", enemy.ID)
	for i := 0; i < 200 && ts.Store.EnemyCount() > 0; i++ {
		Applied(t, ts.PostJSON(t, path, nil, token))
	}
	require.Equal(t, 0, ts.Store.EnemyCount())

	data := stream.RecvGame(hook.AfterEnemyDefeat, 2*time.Second)
	assert.Equal(t, enemy.ID, data["enemy_id"])

	final := stream.RecvState(2*time.Second, func(s *store.Snapshot) bool {
		return s.Counters.EnemiesDefeated == 1
	})
	assert.Empty(t, final.Enemies)
	assert.Equal(t, enemy.GoldReward, final.Player.Gold)

	// A second defeat of the same enemy pays nothing.
	assert.False(t, Applied(t, ts.PostJSON(t, path, nil, token)))
	assert.Equal(t, enemy.GoldReward, ts.Store.Player().Gold)
}

func TestCombat_DeathAndRespawn(t *testing.T) {
	ts := NewTestServer(t)
	token := ts.Login(t, "Aria")
	stream := ts.ConnectSSE(t, token)

	require.True(t, Applied(t, ts.PostJSON(t, "/api/player/damage", map[string]int{"amount": 500}, token)))
	stream.RecvGame(hook.OnPlayerDeath, 2*time.Second)
	stream.RecvGame(hook.OnPlayerRespawn, 2*time.Second)

	p := ts.Store.Player()
	assert.Equal(t, p.Stats.MaxHealth, p.Stats.Health)
	assert.Equal(t, entity.Vec3{}, p.Position)
}

func TestProgression_AuditedAndRanked(t *testing.T) {
	ts := NewTestServer(t)
	token := ts.Login(t, "Aria")
	stream := ts.ConnectSSE(t, token)

	resp := ts.Do(t, http.MethodPost, "/api/admin/xp", map[string]int{"amount": 100}, "", "X-Admin-Key", AdminKey)
	require.True(t, Applied(t, resp))
	data := stream.RecvGame(hook.OnPlayerLevelUp, 2*time.Second)
	assert.Equal(t, float64(2), data["level"])

	// ranking is written by the level-up notification
	require.Eventually(t, func() bool {
		body := ReadJSON(t, ts.Get(t, "/api/ranking/level", ""))
		entries, _ := body["ranking"].([]interface{})
		if len(entries) != 1 {
			return false
		}
		e := entries[0].(map[string]interface{})
		return e["name"] == "Aria" && e["level"] == float64(2)
	}, 2*time.Second, 20*time.Millisecond)

	ts.Audit.Stop(context.Background())
	var rows []model.ProgressEvent
	require.NoError(t, ts.DB.Where("event = ?", hook.OnPlayerLevelUp).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "Aria", rows[0].PlayerName)
	assert.Equal(t, 2, rows[0].Level)
	assert.NotEmpty(t, rows[0].SessionID)
}

func TestQuest_GenerateAndComplete(t *testing.T) {
	ts := NewTestServer(t)
	token := ts.Login(t, "Aria")

	body := ReadJSON(t, ts.PostJSON(t, "/api/quests/generate", nil, token))
	q := body["quest"].(map[string]interface{})
	id := q["id"].(string)

	require.True(t, Applied(t, ts.PostJSON(t, "/api/quests/"+id+"/complete", nil, token)))
	assert.False(t, Applied(t, ts.PostJSON(t, "/api/quests/"+id+"/complete", nil, token)), "rewards paid once")

	snap := ts.Store.Snapshot()
	require.Len(t, snap.Quests, 1)
	assert.True(t, snap.Quests[0].Completed)
	assert.Equal(t, 1, snap.Counters.QuestsCompleted)
}
