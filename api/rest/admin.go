package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/epicadventure/game/store"
	"github.com/kasuganosora/epicadventure/scheduler"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminHandler handles admin-only REST endpoints.
// Routes should be protected by AdminAuth middleware.
type AdminHandler struct {
	st     *store.Store
	sched  *scheduler.Scheduler
	logger *zap.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(st *store.Store, sched *scheduler.Scheduler, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{st: st, sched: sched, logger: logger}
}

// Register mounts the admin routes on g.
func (h *AdminHandler) Register(g *gin.RouterGroup) {
	g.GET("/scheduler", h.ListSchedulerTasks)
	g.DELETE("/scheduler/:name", h.CancelSchedulerTask)
	g.POST("/xp", h.GrantXP)
	g.POST("/gold", h.GrantGold)
	g.POST("/levelup", h.LevelUp)
	g.POST("/enemies/:id/defeat", h.DefeatEnemy)
}

// ListSchedulerTasks returns every registered ticker and pending delay.
// GET /api/admin/scheduler
func (h *AdminHandler) ListSchedulerTasks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tasks": h.sched.List()})
}

// CancelSchedulerTask stops a ticker or pending delay by name.
// DELETE /api/admin/scheduler/:name
func (h *AdminHandler) CancelSchedulerTask(c *gin.Context) {
	name := c.Param("name")
	if !h.sched.Remove(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such task"})
		return
	}
	h.logger.Info("admin cancelled scheduler task", zap.String("name", name))
	c.JSON(http.StatusOK, gin.H{"removed": name})
}

// GrantXP grants experience through the normal progression rules.
// POST /api/admin/xp {amount}
func (h *AdminHandler) GrantXP(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ok := h.st.GainXP(*req.Amount)
	h.logger.Info("admin granted xp", zap.Int("amount", *req.Amount), zap.Bool("applied", ok))
	c.JSON(http.StatusOK, gin.H{"applied": ok, "player": h.st.Player()})
}

// GrantGold adds (or with a negative amount removes) gold.
// POST /api/admin/gold {amount}
func (h *AdminHandler) GrantGold(c *gin.Context) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ok := h.st.AddGold(*req.Amount)
	h.logger.Info("admin granted gold", zap.Int("amount", *req.Amount), zap.Bool("applied", ok))
	c.JSON(http.StatusOK, gin.H{"applied": ok, "player": h.st.Player()})
}

// LevelUp forces a level-up.
// POST /api/admin/levelup
func (h *AdminHandler) LevelUp(c *gin.Context) {
	ok := h.st.LevelUp()
	c.JSON(http.StatusOK, gin.H{"applied": ok, "player": h.st.Player()})
}

// DefeatEnemy removes an enemy with full rewards, bypassing combat.
// POST /api/admin/enemies/:id/defeat
func (h *AdminHandler) DefeatEnemy(c *gin.Context) {
	ok := h.st.DefeatEnemy(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"applied": ok})
}

// AdminAuth returns a middleware that checks the X-Admin-Key header against
// a bcrypt hash. An empty hash disables the admin endpoints (503).
func AdminAuth(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				gin.H{"error": "admin endpoints disabled: set server.admin_key_hash in config"})
			return
		}
		key := c.GetHeader("X-Admin-Key")
		if key == "" || bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)) != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
