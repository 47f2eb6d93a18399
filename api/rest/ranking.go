package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/epicadventure/cache"
	"github.com/kasuganosora/epicadventure/game/broadcast"
	"go.uber.org/zap"
)

// RankingHandler handles leaderboard REST endpoints.
type RankingHandler struct {
	cache  cache.Cache
	logger *zap.Logger
}

// NewRankingHandler creates a RankingHandler.
func NewRankingHandler(c cache.Cache, logger *zap.Logger) *RankingHandler {
	return &RankingHandler{cache: c, logger: logger}
}

const rankingTop = 100

// RankEntry is one row in the leaderboard.
type RankEntry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// TopLevel returns the highest-level players seen by this server.
// GET /api/ranking/level?limit=20
func (h *RankingHandler) TopLevel(c *gin.Context) {
	limit := 20
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= rankingTop {
		limit = l
	}

	ctx := c.Request.Context()
	members, err := h.cache.ZRevRange(ctx, broadcast.RankingKey, 0, int64(limit-1))
	if err != nil {
		h.logger.Error("ranking read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cache error"})
		return
	}
	entries := make([]RankEntry, 0, len(members))
	for _, m := range members {
		score, err := h.cache.ZScore(ctx, broadcast.RankingKey, m)
		if err != nil {
			// removed between the two reads
			continue
		}
		entries = append(entries, RankEntry{Rank: len(entries) + 1, Name: m, Level: int(score)})
	}
	c.JSON(http.StatusOK, gin.H{"ranking": entries})
}
