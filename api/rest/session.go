package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kasuganosora/epicadventure/cache"
	"github.com/kasuganosora/epicadventure/config"
	"github.com/kasuganosora/epicadventure/game/entity"
	"github.com/kasuganosora/epicadventure/game/store"
	mw "github.com/kasuganosora/epicadventure/middleware"
	"github.com/kasuganosora/epicadventure/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionTagger tags recorded history with the current session.
type SessionTagger interface {
	SetSession(id string)
}

// PlayerRecorder keeps a player's ranking entry current.
type PlayerRecorder interface {
	RecordPlayer(ctx context.Context, p entity.Player)
}

// SessionHandler issues and revokes game sessions.
type SessionHandler struct {
	db      *gorm.DB
	cache   cache.Cache
	sec     config.SecurityConfig
	st      *store.Store
	tagger  SessionTagger
	ranking PlayerRecorder
	logger  *zap.Logger
}

// NewSessionHandler creates a SessionHandler. tagger and ranking may be nil.
func NewSessionHandler(db *gorm.DB, c cache.Cache, sec config.SecurityConfig, st *store.Store,
	tagger SessionTagger, ranking PlayerRecorder, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{db: db, cache: c, sec: sec, st: st, tagger: tagger, ranking: ranking, logger: logger}
}

type sessionRequest struct {
	Name string `json:"name" binding:"required,min=1,max=32"`
}

// Create handles POST /api/session {"name"}.
// The player is renamed and a bearer token bound to a fresh session is issued.
func (h *SessionHandler) Create(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be blank"})
		return
	}

	sid := uuid.NewString()
	token, err := mw.GenerateToken(sid, name, h.sec.JWTSecret, h.sec.JWTTTLH)
	if err != nil {
		h.logger.Error("token signing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.cache.Set(ctx, mw.SessionKey(token), sid, h.sec.JWTTTLH); err != nil {
		h.logger.Error("session cache write failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable"})
		return
	}

	// History row is best-effort; the session works without it.
	if err := h.db.WithContext(ctx).Create(&model.Session{
		ID:         sid,
		PlayerName: name,
		IP:         c.ClientIP(),
	}).Error; err != nil {
		h.logger.Warn("session row write failed", zap.String("session_id", sid), zap.Error(err))
	}

	if h.tagger != nil {
		h.tagger.SetSession(sid)
	}
	h.st.SetPlayerName(name)
	if h.ranking != nil {
		h.ranking.RecordPlayer(ctx, h.st.Player())
	}

	mw.RequestLogger(c, h.logger).Info("session created", zap.String("session_id", sid), zap.String("player", name))
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"session_id": sid,
		"expires_in": int64(h.sec.JWTTTLH / time.Second),
		"state":      h.st.Snapshot(),
	})
}

// Delete handles DELETE /api/session. The token stops working immediately.
func (h *SessionHandler) Delete(c *gin.Context) {
	tokenStr := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	sid := mw.GetSessionID(c)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.cache.Del(ctx, mw.SessionKey(tokenStr)); err != nil {
		h.logger.Error("session cache delete failed", zap.String("session_id", sid), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable"})
		return
	}

	now := time.Now()
	if err := h.db.WithContext(ctx).Model(&model.Session{}).
		Where("id = ?", sid).
		Update("last_seen_at", &now).Error; err != nil {
		h.logger.Warn("session row update failed", zap.String("session_id", sid), zap.Error(err))
	}
	mw.RequestLogger(c, h.logger).Info("session closed", zap.String("session_id", sid))
	c.JSON(http.StatusOK, gin.H{"message": "session closed"})
}
