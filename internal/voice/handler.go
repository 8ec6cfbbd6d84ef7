package voice

import (
	"net/http"

	"bocateria/internal/menu"
	"bocateria/internal/session"

	"github.com/gin-gonic/gin"
)

// Catalog provides the menu for the persona prompt and tool lookups.
type Catalog interface {
	ItemLookup
	AllItems() []menu.Item
}

type Sessions interface {
	Get(id string) (*session.Session, error)
}

type Handler struct {
	bridge   *Bridge
	sessions Sessions
	catalog  Catalog
}

func NewHandler(bridge *Bridge, sessions Sessions, catalog Catalog) *Handler {
	return &Handler{bridge: bridge, sessions: sessions, catalog: catalog}
}

// --------------------------------------------------
// GET /sessions/:id/voice (websocket)
// --------------------------------------------------
func (h *Handler) Connect(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	tools := NewToolHandler(s.Manager, h.catalog)
	instruction := SystemInstruction(h.catalog.AllItems())

	_ = h.bridge.Serve(c.Request.Context(), c.Writer, c.Request, tools, instruction)
}
