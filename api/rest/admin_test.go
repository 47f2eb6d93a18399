package rest_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminHeader(key string) []string { return []string{"X-Admin-Key", key} }

func TestAdminAuth_NoHash_Disabled(t *testing.T) {
	r := buildTestAPI(t, false)
	w := r.do(http.MethodGet, "/api/admin/scheduler", "", nil, adminHeader(adminKey)...)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAdminAuth_WrongKey(t *testing.T) {
	a := newTestAPI(t)
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/api/admin/scheduler", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized,
		a.do(http.MethodGet, "/api/admin/scheduler", "", nil, adminHeader("wrong")...).Code)
}

func TestAdmin_ListScheduler(t *testing.T) {
	a := newTestAPI(t)
	a.sched.AddTicker("game_tick", time.Second, func() {})
	tok := a.login(t, "Aria")
	require.True(t, applied(t, a.do(http.MethodPost, "/api/skills/skill-swordsman-0/use", tok, nil)))

	w := a.do(http.MethodGet, "/api/admin/scheduler", "", nil, adminHeader(adminKey)...)
	require.Equal(t, http.StatusOK, w.Code)
	tasks := decode(t, w)["tasks"].([]interface{})
	require.Len(t, tasks, 2)
	assert.Equal(t, "game_tick", tasks[0].(map[string]interface{})["name"])
	assert.Contains(t, tasks[1].(map[string]interface{})["name"], "aura_clear")
}

func TestAdmin_CancelSchedulerTask(t *testing.T) {
	a := newTestAPI(t)
	a.sched.AddTicker("enemy_respawn", time.Hour, func() {})
	hdr := adminHeader(adminKey)

	w := a.do(http.MethodDelete, "/api/admin/scheduler/enemy_respawn", "", nil, hdr...)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "enemy_respawn", decode(t, w)["removed"])
	assert.Empty(t, a.sched.List())

	w = a.do(http.MethodDelete, "/api/admin/scheduler/enemy_respawn", "", nil, hdr...)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdmin_GrantXPAndGold(t *testing.T) {
	a := newTestAPI(t)
	hdr := adminHeader(adminKey)

	assert.True(t, applied(t, a.do(http.MethodPost, "/api/admin/xp", "", `{"amount":100}`, hdr...)))
	assert.Equal(t, 2, a.st.Player().Level)

	assert.True(t, applied(t, a.do(http.MethodPost, "/api/admin/gold", "", `{"amount":50}`, hdr...)))
	assert.False(t, applied(t, a.do(http.MethodPost, "/api/admin/gold", "", `{"amount":-500}`, hdr...)), "gold never goes negative")
	assert.Equal(t, 50, a.st.Player().Gold)

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, "/api/admin/xp", "", `{}`, hdr...).Code)
}

func TestAdmin_LevelUpAndDefeat(t *testing.T) {
	a := newTestAPI(t)
	hdr := adminHeader(adminKey)

	assert.True(t, applied(t, a.do(http.MethodPost, "/api/admin/levelup", "", nil, hdr...)))
	assert.Equal(t, 2, a.st.Player().Level)

	require.True(t, a.st.SpawnEnemies(1))
	id := a.st.Snapshot().Enemies[0].ID
	assert.True(t, applied(t, a.do(http.MethodPost, "/api/admin/enemies/"+id+"/defeat", "", nil, hdr...)))
	assert.Equal(t, 0, a.st.EnemyCount())
	assert.False(t, applied(t, a.do(http.MethodPost, "/api/admin/enemies/"+id+"/defeat", "", nil, hdr...)))
}
