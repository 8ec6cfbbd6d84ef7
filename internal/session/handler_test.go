package session

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupRouter(t *testing.T) (*gin.Engine, *Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r, store, _ := newTestRegistry(t)
	h := NewHandler(r, store).WithJoinBaseURL("https://bocateria.example/app")

	engine := gin.New()
	engine.POST("/sessions", h.Create)
	s := engine.Group("/sessions/:id")
	s.GET("/bill", h.Bill)
	s.POST("/join", h.Join)
	s.GET("/join-link", h.JoinLink)
	s.POST("/cart", h.AddToCart)
	s.POST("/cart/initiate", h.InitiateAddToCart)
	s.POST("/cart/finalize", h.FinalizeAddToCart)
	s.DELETE("/cart/:itemId", h.CancelItem)
	s.PATCH("/cart/:itemId", h.ReassignItem)
	s.POST("/pay", h.Pay)
	s.POST("/reorder", h.Reorder)
	s.GET("/toasts", h.Toasts)
	engine.GET("/admin/dashboard", h.Dashboard)

	return engine, r
}

func do(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, engine *gin.Engine) string {
	t.Helper()

	w := do(t, engine, http.MethodPost, "/sessions", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: %d %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return resp.ID
}

func TestOrderingFlow(t *testing.T) {
	engine, _ := setupRouter(t)
	id := createSession(t, engine)
	base := "/sessions/" + id

	w := do(t, engine, http.MethodPost, base+"/cart/initiate", `{"itemType":"menu","itemId":1,"quantity":2}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d %s", w.Code, w.Body.String())
	}

	w = do(t, engine, http.MethodPost, base+"/cart/finalize", `{"name":"Ana"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", w.Code, w.Body.String())
	}

	w = do(t, engine, http.MethodPost, base+"/cart", `{"itemType":"drink","itemId":1,"customerName":"Luis","quantity":1,"customizations":{"removed":[],"added":[{"name":"Caviar"}]}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown extra should be rejected, got %d", w.Code)
	}

	w = do(t, engine, http.MethodGet, base+"/bill", "")
	var bill struct {
		Customers []string `json:"customers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &bill); err != nil {
		t.Fatalf("decode bill: %v (%s)", err, w.Body.String())
	}
	if len(bill.Customers) != 1 || bill.Customers[0] != "Ana" {
		t.Fatalf("unexpected customers %v", bill.Customers)
	}

	w = do(t, engine, http.MethodGet, base+"/toasts", "")
	if !bytes.Contains(w.Body.Bytes(), []byte("añadido para Ana")) {
		t.Fatalf("expected add toast, got %s", w.Body.String())
	}

	w = do(t, engine, http.MethodPost, base+"/pay", `{"tip":"1.00"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("pay: %d %s", w.Code, w.Body.String())
	}

	w = do(t, engine, http.MethodGet, "/admin/dashboard", "")
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"totalOrders":1`)) {
		t.Fatalf("dashboard: %d %s", w.Code, w.Body.String())
	}
}

func TestCancelUnknownItem(t *testing.T) {
	engine, _ := setupRouter(t)
	id := createSession(t, engine)

	w := do(t, engine, http.MethodDelete, "/sessions/"+id+"/cart/missing", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUnknownSession(t *testing.T) {
	engine, _ := setupRouter(t)

	w := do(t, engine, http.MethodGet, "/sessions/unknown/bill", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestJoinRejectsBadCode(t *testing.T) {
	engine, _ := setupRouter(t)

	w := do(t, engine, http.MethodPost, "/sessions?join=MESA-1", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	id := createSession(t, engine)
	w = do(t, engine, http.MethodPost, "/sessions/"+id+"/join", `{"code":"TABLE-4"}`)
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"tableNumber":"4"`)) {
		t.Fatalf("join: %d %s", w.Code, w.Body.String())
	}
}

func TestReorderUnknownOrder(t *testing.T) {
	engine, _ := setupRouter(t)
	id := createSession(t, engine)

	w := do(t, engine, http.MethodPost, "/sessions/"+id+"/reorder", `{"orderId":"42"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCreateWithClientIDResumes(t *testing.T) {
	engine, _ := setupRouter(t)

	w := do(t, engine, http.MethodPost, "/sessions", `{"clientId":"phone-ana"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", w.Code, w.Body.String())
	}
	var first struct {
		ID       string `json:"id"`
		ClientID string `json:"clientId"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &first)
	if first.ClientID != "phone-ana" {
		t.Fatalf("expected clientId echoed, got %q", first.ClientID)
	}

	w = do(t, engine, http.MethodPost, "/sessions?clientId=phone-ana", "")
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(first.ID)) {
		t.Fatalf("expected the same session with 200, got %d %s", w.Code, w.Body.String())
	}

	w = do(t, engine, http.MethodPost, "/sessions", `{"clientId":"no spaces allowed"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad clientId, got %d", w.Code)
	}
}

// chunked bodies arrive with ContentLength -1
func doChunked(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, io.MultiReader(bytes.NewReader([]byte(body))))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestPayWithoutBody(t *testing.T) {
	engine, _ := setupRouter(t)
	id := createSession(t, engine)

	w := doChunked(engine, "/sessions/"+id+"/pay", "")
	if w.Code != http.StatusOK {
		t.Fatalf("empty chunked body should pay without tip, got %d %s", w.Code, w.Body.String())
	}

	w = do(t, engine, http.MethodPost, "/sessions/"+id+"/pay", "")
	if w.Code != http.StatusOK {
		t.Fatalf("empty body should pay without tip, got %d %s", w.Code, w.Body.String())
	}

	w = doChunked(engine, "/sessions/"+id+"/pay", `{"tip":"-1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("negative tip should be rejected, got %d", w.Code)
	}

	w = doChunked(engine, "/sessions/"+id+"/pay", `{"tip":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("truncated body should be rejected, got %d", w.Code)
	}
}

func TestJoinLink(t *testing.T) {
	engine, _ := setupRouter(t)
	id := createSession(t, engine)

	w := do(t, engine, http.MethodGet, "/sessions/"+id+"/join-link", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 without a table, got %d", w.Code)
	}

	do(t, engine, http.MethodPost, "/sessions/"+id+"/join", `{"code":"TABLE-7"}`)

	w = do(t, engine, http.MethodGet, "/sessions/"+id+"/join-link", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Code string `json:"code"`
		URL  string `json:"url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != "TABLE-7" || resp.URL != "https://bocateria.example/app?join=TABLE-7" {
		t.Fatalf("unexpected link %+v", resp)
	}
}
