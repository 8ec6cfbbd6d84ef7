package assistant

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"bocateria/internal/llm"
	"bocateria/internal/menu"
	"bocateria/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	maxPhotoSize = 8 << 20
	// inline requests to the model are capped at 20 MB
	maxVideoSize = 18 << 20
)

var allowedVideoExt = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
}

// Sessions resolves the bill to read aloud.
type Sessions interface {
	Get(id string) (*session.Session, error)
}

type Handler struct {
	service  *Service
	sessions Sessions
}

func NewHandler(service *Service, sessions Sessions) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// writeError maps service errors to status codes. AI failures are 502.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyPrompt), errors.Is(err, ErrInvalidPrice), errors.Is(err, ErrEmptyBill), errors.Is(err, ErrNoMedia):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNoMatch):
		c.JSON(http.StatusNotFound, gin.H{"error": "No se pudo encontrar una coincidencia clara en el menú."})
	case errors.Is(err, menu.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, llm.ErrUnsupported):
		c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNoUploader):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Lo siento, ha ocurrido un error. Por favor, inténtalo de nuevo."})
	}
}

// --------------------------------------------------
// POST /ai/recommend
// --------------------------------------------------
func (h *Handler) Recommend(c *gin.Context) {
	var req struct {
		DiningOption string `json:"diningOption"`
		Request      string `json:"request" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	text, err := h.service.Recommend(c.Request.Context(), req.DiningOption, req.Request)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendation": text})
}

// --------------------------------------------------
// POST /ai/popular
// --------------------------------------------------
func (h *Handler) Popular(c *gin.Context) {
	var req struct {
		DiningOption string `json:"diningOption"`
	}
	_ = c.ShouldBindJSON(&req)

	items, err := h.service.Popular(c.Request.Context(), req.DiningOption)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// --------------------------------------------------
// POST /ai/chat
// --------------------------------------------------
func (h *Handler) Chat(c *gin.Context) {
	var req struct {
		History []llm.Message `json:"history"`
		Message string        `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reply, err := h.service.Chat(c.Request.Context(), req.History, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// readUpload pulls one multipart file into memory, refusing anything over
// limit or with an extension outside the allowed set.
func readUpload(c *gin.Context, field string, limit int64, contentType func(string) (string, error)) (llm.Media, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit+1<<20)

	file, header, err := c.Request.FormFile(field)
	if err != nil {
		return llm.Media{}, fmt.Errorf("%s is required", field)
	}
	defer file.Close()

	if header.Size > limit {
		return llm.Media{}, fmt.Errorf("%s is too large", field)
	}

	mimeType, err := contentType(header.Filename)
	if err != nil {
		return llm.Media{}, err
	}

	data, err := io.ReadAll(io.LimitReader(file, limit))
	if err != nil {
		return llm.Media{}, err
	}
	return llm.Media{Data: data, MIMEType: mimeType}, nil
}

func videoContentType(filename string) (string, error) {
	ct, ok := allowedVideoExt[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return "", errors.New("file type not allowed")
	}
	return ct, nil
}

// --------------------------------------------------
// POST /ai/identify-dish
// --------------------------------------------------
func (h *Handler) IdentifyDish(c *gin.Context) {
	photo, err := readUpload(c, "image", maxPhotoSize, menu.ValidateImageExtension)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.IdentifyDish(c.Request.Context(), photo)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// --------------------------------------------------
// POST /ai/analyze-video
// --------------------------------------------------
func (h *Handler) AnalyzeVideo(c *gin.Context) {
	clip, err := readUpload(c, "video", maxVideoSize, videoContentType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.service.AnalyzeVideo(c.Request.Context(), clip, c.PostForm("question"))
	switch {
	case errors.Is(err, ErrEmptyPrompt), errors.Is(err, ErrNoMedia), errors.Is(err, llm.ErrUnsupported):
		writeError(c, err)
		return
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error al analizar el vídeo. Asegúrate de que no sea muy largo."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// --------------------------------------------------
// POST /sessions/:id/ai/read-bill
// --------------------------------------------------
func (h *Handler) ReadBill(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	audio, err := h.service.ReadBillAloud(c.Request.Context(), s.Manager)
	if err != nil {
		if !errors.Is(err, ErrEmptyBill) {
			s.Toasts.Error("Error al generar el audio.")
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"audio":      audio,
		"encoding":   "pcm_s16le",
		"sampleRate": SpeechSampleRate,
	})
}

// --------------------------------------------------
// POST /admin/ai/dish
// --------------------------------------------------
func (h *Handler) CreateDish(c *gin.Context) {
	var req struct {
		Prompt string          `json:"prompt" binding:"required"`
		Price  decimal.Decimal `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.service.CreateDish(c.Request.Context(), req.Prompt, req.Price)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// --------------------------------------------------
// POST /admin/ai/items/:type/:id/image
// --------------------------------------------------
func (h *Handler) GenerateImage(c *gin.Context) {
	itemType, err := menu.ParseItemType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req struct {
		Prompt string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	url, err := h.service.GenerateDishImage(c.Request.Context(), itemType, itemID, req.Prompt)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": itemID, "imageUrl": url})
}
