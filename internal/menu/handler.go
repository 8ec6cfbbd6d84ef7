package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ImageUploader stores a dish photo and returns its public url.
type ImageUploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Handler struct {
	store *Store
}

type AdminHandler struct {
	store    *Store
	uploader ImageUploader
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func NewAdminHandler(store *Store, uploader ImageUploader) *AdminHandler {
	return &AdminHandler{store: store, uploader: uploader}
}

// --------------------------------------------------
// GET /menu?category=&allergies=gluten,dairy&search=
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	f := Filter{
		Category:  c.DefaultQuery("category", CategoryAll),
		Allergies: ParseAllergies(c.QueryArray("allergies")),
		Search:    c.Query("search"),
	}

	c.JSON(http.StatusOK, gin.H{
		"items":  h.store.FilteredMenu(f),
		"status": h.store.LastStatus(),
	})
}

// --------------------------------------------------
// GET /menu/drinks
// --------------------------------------------------
func (h *Handler) Drinks(c *gin.Context) {
	allergies := ParseAllergies(c.QueryArray("allergies"))
	c.JSON(http.StatusOK, gin.H{"items": h.store.FilteredDrinks(allergies)})
}

// --------------------------------------------------
// GET /menu/more-drinks
// --------------------------------------------------
func (h *Handler) MoreDrinks(c *gin.Context) {
	allergies := ParseAllergies(c.QueryArray("allergies"))
	c.JSON(http.StatusOK, gin.H{"items": h.store.FilteredMoreDrinks(allergies)})
}

func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.store.Categories()})
}

func (h *Handler) AllergyOptions(c *gin.Context) {
	out := make([]gin.H, 0, len(Allergies))
	for _, a := range Allergies {
		out = append(out, gin.H{"key": a, "label": AllergyLabels[a]})
	}
	c.JSON(http.StatusOK, gin.H{"allergies": out})
}

// --------------------------------------------------
// Staff: POST /admin/menu/reset
// --------------------------------------------------
func (h *AdminHandler) Reset(c *gin.Context) {
	if err := h.store.Reset(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.store.LastStatus()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": h.store.LastStatus()})
}

// --------------------------------------------------
// Staff: POST /admin/menu/items/:type/:id/image
// Accepts either JSON {"imageUrl": "..."} or a multipart "image" file.
// --------------------------------------------------
func (h *AdminHandler) UpdateImage(c *gin.Context) {
	itemType, itemID, ok := parseItemRef(c)
	if !ok {
		return
	}

	var imageURL string

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		url, err := h.uploadImage(c, itemType, itemID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		imageURL = url
	} else {
		var req struct {
			ImageURL string `json:"imageUrl" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "imageUrl is required"})
			return
		}
		imageURL = req.ImageURL
	}

	if err := h.store.UpdateItemImage(c.Request.Context(), itemID, imageURL, itemType); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": h.store.LastStatus()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": itemID, "imageUrl": imageURL})
}

func (h *AdminHandler) uploadImage(c *gin.Context, itemType ItemType, itemID int) (string, error) {
	if h.uploader == nil {
		return "", errors.New("image uploads are not configured")
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		return "", errors.New("image is required")
	}
	defer file.Close()

	contentType, err := ValidateImageExtension(header.Filename)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf(
		"menu/%s/%d/%s%s",
		itemType,
		itemID,
		uuid.New().String(),
		strings.ToLower(filepath.Ext(header.Filename)),
	)

	return h.uploader.Upload(c.Request.Context(), key, file, contentType)
}

// --------------------------------------------------
// Staff: POST /admin/menu/models/:id
// --------------------------------------------------
func (h *AdminHandler) UpdateModel(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	var req struct {
		ModelURL string `json:"modelUrl" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "modelUrl is required"})
		return
	}

	item, err := h.store.UpdateItemModel(itemID, req.ModelURL)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

func parseItemRef(c *gin.Context) (ItemType, int, bool) {
	itemType, err := ParseItemType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", 0, false
	}

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return "", 0, false
	}

	return itemType, itemID, true
}
