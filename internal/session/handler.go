package session

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"bocateria/internal/menu"
	"bocateria/internal/order"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type Handler struct {
	registry    *Registry
	catalog     order.Catalog
	joinBaseURL string
}

func NewHandler(registry *Registry, catalog order.Catalog) *Handler {
	return &Handler{registry: registry, catalog: catalog}
}

// WithJoinBaseURL sets the app url that table join links point at.
func (h *Handler) WithJoinBaseURL(base string) *Handler {
	h.joinBaseURL = base
	return h
}

// bindOptionalJSON binds a body that may be absent. An empty body, with or
// without a Content-Length, leaves v untouched.
func bindOptionalJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// session resolves :id or writes a 404.
func (h *Handler) session(c *gin.Context) (*Session, bool) {
	s, err := h.registry.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	return s, true
}

// --------------------------------------------------
// POST /sessions
// --------------------------------------------------
// Body {"clientId": "..."} is optional. A known clientId resumes its live
// session (200); otherwise a session is opened with that client's saved
// history (201). ?join=TABLE-n also seats it at the table.
func (h *Handler) Create(c *gin.Context) {
	var req struct {
		ClientID string `json:"clientId"`
	}
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.ClientID == "" {
		req.ClientID = c.Query("clientId")
	}

	var (
		s       *Session
		created bool
		err     error
	)
	if code := c.Query("join"); code != "" {
		s, created, err = h.registry.Join(c.Request.Context(), code, req.ClientID)
	} else {
		s, created, err = h.registry.Open(c.Request.Context(), req.ClientID)
	}

	switch {
	case errors.Is(err, ErrInvalidClientID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid clientId"})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "código de mesa no válido"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"id": s.ID, "clientId": s.ClientID, "bill": s.Manager.Snapshot()})
}

func (h *Handler) Bill(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Manager.Snapshot())
}

// --------------------------------------------------
// Dining context
// --------------------------------------------------
func (h *Handler) SetDining(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Option *order.DiningOption `json:"option"`
		Table  *string             `json:"table"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Option != nil && !req.Option.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dining option"})
		return
	}

	s.Manager.SetDiningOption(req.Option)
	s.Manager.SetTableNumber(req.Table)
	c.JSON(http.StatusOK, s.Manager.Snapshot())
}

func (h *Handler) Join(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := s.Manager.JoinTable(req.Code); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "código de mesa no válido"})
		return
	}
	c.JSON(http.StatusOK, s.Manager.Snapshot())
}

// JoinLink returns the code and url other diners open to sit at this
// table. The client renders it as a QR code.
func (h *Handler) JoinLink(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	code, ok := s.Manager.JoinCode()
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "la mesa no tiene número"})
		return
	}

	resp := gin.H{"code": code}
	if h.joinBaseURL != "" {
		resp["url"] = joinURL(h.joinBaseURL, code)
	}
	c.JSON(http.StatusOK, resp)
}

func joinURL(base, code string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?join=" + url.QueryEscape(code)
	}
	q := u.Query()
	q.Set("join", code)
	u.RawQuery = q.Encode()
	return u.String()
}

// --------------------------------------------------
// Cart
// --------------------------------------------------

type cartRequest struct {
	ItemType       menu.ItemType         `json:"itemType" binding:"required"`
	ItemID         int                   `json:"itemId" binding:"required"`
	CustomerName   string                `json:"customerName"`
	Quantity       int                   `json:"quantity"`
	Customizations *order.Customizations `json:"customizations"`
}

// resolve looks the item up and validates the requested customizations.
func (h *Handler) resolve(c *gin.Context, req cartRequest) (menu.Item, *order.Customizations, bool) {
	item, err := h.catalog.Lookup(req.ItemType, req.ItemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return menu.Item{}, nil, false
	}

	custom, err := order.ResolveCustomizations(item, req.Customizations)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return menu.Item{}, nil, false
	}
	return item, custom, true
}

func (h *Handler) AddToCart(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req cartRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CustomerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, custom, ok := h.resolve(c, req)
	if !ok {
		return
	}

	line := s.Manager.AddToCart(item, req.CustomerName, req.Quantity, custom)
	c.JSON(http.StatusCreated, line)
}

// InitiateAddToCart answers 202 with needsName when a name must be asked.
func (h *Handler) InitiateAddToCart(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req cartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, custom, ok := h.resolve(c, req)
	if !ok {
		return
	}

	line, added := s.Manager.InitiateAddToCart(item, req.Quantity, custom, nil)
	if !added {
		c.JSON(http.StatusAccepted, gin.H{
			"needsName": true,
			"pending":   s.Manager.PendingRequest(),
		})
		return
	}
	c.JSON(http.StatusCreated, line)
}

func (h *Handler) FinalizeAddToCart(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	line, ok := s.Manager.FinalizeAddToCart(req.Name)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "no pending item"})
		return
	}
	c.JSON(http.StatusCreated, line)
}

func (h *Handler) CancelItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	if !s.Manager.CancelOrderItem(c.Param("itemId")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
		return
	}
	c.JSON(http.StatusOK, s.Manager.Snapshot())
}

func (h *Handler) ReassignItem(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		CustomerName string `json:"customerName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if !s.Manager.ReassignCartItem(c.Param("itemId"), req.CustomerName) {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
		return
	}
	c.JSON(http.StatusOK, s.Manager.Snapshot())
}

func (h *Handler) AddItemToCustomer(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		ItemType     menu.ItemType `json:"itemType" binding:"required"`
		ItemID       int           `json:"itemId" binding:"required"`
		CustomerName *string       `json:"customerName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	line, err := s.Manager.AddNewItemToCustomer(req.ItemType, req.ItemID, req.CustomerName)
	if errors.Is(err, order.ErrItemNotFound) {
		s.Toasts.Error("Error: Artículo no encontrado.")
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}
	if line == nil {
		c.JSON(http.StatusAccepted, gin.H{
			"needsName": true,
			"pending":   s.Manager.PendingRequest(),
		})
		return
	}
	c.JSON(http.StatusCreated, line)
}

func (h *Handler) ClearBill(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Manager.ClearBill()
	c.JSON(http.StatusOK, s.Manager.Snapshot())
}

// --------------------------------------------------
// Payment & history
// --------------------------------------------------
func (h *Handler) Pay(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		Tip decimal.Decimal `json:"tip"`
	}
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Tip.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tip must not be negative"})
		return
	}

	placed, err := s.Manager.PaymentSuccess(c.Request.Context(), req.Tip)
	if err != nil {
		// the bill is closed either way; only the history write failed
		c.JSON(http.StatusOK, gin.H{"order": placed, "warning": "order history not saved"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": placed})
}

func (h *Handler) History(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Manager.OrderHistory())
}

func (h *Handler) Reorder(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req struct {
		OrderID string `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	past, err := s.Manager.FindOrder(req.OrderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	res := s.Manager.Reorder(past)
	if len(res.Skipped) > 0 {
		s.Toasts.Error(strconv.Itoa(len(res.Skipped)) + " artículos ya no están disponibles.")
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Toasts(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Toasts.Drain())
}

// --------------------------------------------------
// GET /admin/dashboard
// --------------------------------------------------
func (h *Handler) Dashboard(c *gin.Context) {
	history, err := h.registry.AllHistory(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load order history"})
		return
	}
	c.JSON(http.StatusOK, order.Stats(history))
}
