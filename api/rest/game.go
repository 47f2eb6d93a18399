package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/epicadventure/game/entity"
	"github.com/kasuganosora/epicadventure/game/store"
	"go.uber.org/zap"
)

// GameHandler exposes the game store actions. Every action answers 200 with
// {"applied": bool, "version": n}; a rejected action is not an HTTP error.
type GameHandler struct {
	st     *store.Store
	logger *zap.Logger
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(st *store.Store, logger *zap.Logger) *GameHandler {
	return &GameHandler{st: st, logger: logger}
}

// Register mounts the game routes on g.
func (h *GameHandler) Register(g *gin.RouterGroup) {
	g.GET("/state", h.State)

	g.POST("/player/position", h.Position)
	g.POST("/player/rotation", h.Rotation)
	g.POST("/player/moving", h.Moving)
	g.POST("/player/animation", h.Animation)
	g.POST("/player/class", h.Class)
	g.POST("/player/heal", h.Heal)
	g.POST("/player/damage", h.Damage)
	g.POST("/player/items", h.AddItem)

	g.GET("/skills", h.Skills)
	g.POST("/skills/:id/use", h.UseSkill)

	g.POST("/enemies/spawn", h.SpawnEnemies)
	g.POST("/enemies/:id/attack", h.AttackEnemy)

	g.POST("/quests/generate", h.GenerateQuest)
	g.POST("/quests/:id/progress", h.QuestProgress)
	g.POST("/quests/:id/complete", h.CompleteQuest)

	g.POST("/achievements/check", h.CheckAchievements)

	g.POST("/pets/generate", h.GeneratePet)
	g.POST("/pets/:id/activate", h.ActivatePet)

	g.POST("/zones/:name/discover", h.DiscoverZone)
	g.POST("/dungeons/:index/clear", h.ClearDungeon)
}

func (h *GameHandler) applied(c *gin.Context, ok bool, extra gin.H) {
	body := gin.H{"applied": ok, "version": h.st.Version()}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// State handles GET /api/state.
func (h *GameHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.st.Snapshot())
}

// Position handles POST /api/player/position {x, y, z}.
func (h *GameHandler) Position(c *gin.Context) {
	var req struct {
		X *float64 `json:"x" binding:"required"`
		Y *float64 `json:"y" binding:"required"`
		Z *float64 `json:"z" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.applied(c, h.st.UpdatePlayerPosition(entity.Vec3{*req.X, *req.Y, *req.Z}), nil)
}

// Rotation handles POST /api/player/rotation {rotation}.
func (h *GameHandler) Rotation(c *gin.Context) {
	var req struct {
		Rotation *float64 `json:"rotation" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.applied(c, h.st.UpdatePlayerRotation(*req.Rotation), nil)
}

// Moving handles POST /api/player/moving {moving}.
func (h *GameHandler) Moving(c *gin.Context) {
	var req struct {
		Moving *bool `json:"moving" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.applied(c, h.st.SetMoving(*req.Moving), nil)
}

// Animation handles POST /api/player/animation {animation}.
func (h *GameHandler) Animation(c *gin.Context) {
	var req struct {
		Animation string `json:"animation" binding:"required,max=32"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.applied(c, h.st.SetAnimation(req.Animation), nil)
}

// Class handles POST /api/player/class {class}. Unknown classes are 400.
func (h *GameHandler) Class(c *gin.Context) {
	var req struct {
		Class string `json:"class" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.st.SelectClass(entity.Class(req.Class)); err != nil {
		if errors.Is(err, store.ErrUnknownClass) {
			badRequest(c, err)
			return
		}
		h.logger.Error("select class failed", zap.String("class", req.Class), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	h.applied(c, true, nil)
}

type amountRequest struct {
	Amount *int `json:"amount" binding:"required"`
}

// Heal handles POST /api/player/heal {amount}.
func (h *GameHandler) Heal(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.applied(c, h.st.HealPlayer(*req.Amount), nil)
}

// Damage handles POST /api/player/damage {amount}.
func (h *GameHandler) Damage(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.applied(c, h.st.TakeDamage(*req.Amount), nil)
}

// AddItem handles POST /api/player/items {item}.
func (h *GameHandler) AddItem(c *gin.Context) {
	var req struct {
		Item string `json:"item" binding:"required,max=64"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.applied(c, h.st.AddItem(req.Item), nil)
}

type skillView struct {
	entity.Skill
	Usable bool `json:"usable"`
}

// Skills handles GET /api/skills.
func (h *GameHandler) Skills(c *gin.Context) {
	skills := h.st.Skills()
	out := make([]skillView, 0, len(skills))
	for _, sk := range skills {
		out = append(out, skillView{Skill: sk, Usable: h.st.CanUseSkill(sk.ID)})
	}
	c.JSON(http.StatusOK, gin.H{"skills": out})
}

// UseSkill handles POST /api/skills/:id/use.
func (h *GameHandler) UseSkill(c *gin.Context) {
	h.applied(c, h.st.UseSkill(c.Param("id")), nil)
}

// SpawnEnemies handles POST /api/enemies/spawn {count}.
func (h *GameHandler) SpawnEnemies(c *gin.Context) {
	var req struct {
		Count int `json:"count" binding:"required,min=1,max=50"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.applied(c, h.st.SpawnEnemies(req.Count), gin.H{"enemies": h.st.EnemyCount()})
}

// AttackEnemy handles POST /api/enemies/:id/attack.
func (h *GameHandler) AttackEnemy(c *gin.Context) {
	h.applied(c, h.st.AttackEnemy(c.Param("id")), nil)
}

// GenerateQuest handles POST /api/quests/generate.
func (h *GameHandler) GenerateQuest(c *gin.Context) {
	q := h.st.GenerateQuest()
	h.applied(c, true, gin.H{"quest": q})
}

// QuestProgress handles POST /api/quests/:id/progress {progress}.
func (h *GameHandler) QuestProgress(c *gin.Context) {
	var req struct {
		Progress *int `json:"progress" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	h.applied(c, h.st.UpdateQuestProgress(c.Param("id"), *req.Progress), nil)
}

// CompleteQuest handles POST /api/quests/:id/complete.
func (h *GameHandler) CompleteQuest(c *gin.Context) {
	h.applied(c, h.st.CompleteQuest(c.Param("id")), nil)
}

// CheckAchievements handles POST /api/achievements/check.
func (h *GameHandler) CheckAchievements(c *gin.Context) {
	h.applied(c, h.st.CheckAchievements(), nil)
}

// GeneratePet handles POST /api/pets/generate.
func (h *GameHandler) GeneratePet(c *gin.Context) {
	p := h.st.GeneratePet()
	h.applied(c, true, gin.H{"pet": p})
}

// ActivatePet handles POST /api/pets/:id/activate.
func (h *GameHandler) ActivatePet(c *gin.Context) {
	h.applied(c, h.st.SetActivePet(c.Param("id")), nil)
}

// DiscoverZone handles POST /api/zones/:name/discover.
func (h *GameHandler) DiscoverZone(c *gin.Context) {
	h.applied(c, h.st.DiscoverZone(c.Param("name")), nil)
}

// ClearDungeon handles POST /api/dungeons/:index/clear.
func (h *GameHandler) ClearDungeon(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	d, ok := h.st.ClearDungeon(index)
	h.applied(c, ok, gin.H{"dungeon": d})
}
