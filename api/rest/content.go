package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kasuganosora/epicadventure/game/content"
)

// ContentHandler serves the static catalogs.
type ContentHandler struct{}

// NewContentHandler creates a ContentHandler.
func NewContentHandler() *ContentHandler { return &ContentHandler{} }

// Register mounts the catalog routes on g.
func (h *ContentHandler) Register(g *gin.RouterGroup) {
	g.GET("/classes", h.Classes)
	g.GET("/zones", h.Zones)
	g.GET("/tutorial", h.Tutorial)
	g.GET("/npcs", h.NPCs)
	g.GET("/recipes", h.Recipes)
	g.GET("/pets", h.Pets)
}

func (h *ContentHandler) Classes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"classes": content.AllClasses()})
}

func (h *ContentHandler) Zones(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"zones": content.Zones, "starting_zone": content.StartingZone})
}

func (h *ContentHandler) Tutorial(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"steps": content.TutorialSteps})
}

func (h *ContentHandler) NPCs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"npcs": content.NPCs})
}

func (h *ContentHandler) Recipes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"recipes": content.Recipes})
}

func (h *ContentHandler) Pets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"pets": content.PetTemplates})
}
