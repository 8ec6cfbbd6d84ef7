package router

import (
	"time"

	"bocateria/internal/assistant"
	"bocateria/internal/auth"
	"bocateria/internal/menu"
	"bocateria/internal/middleware"
	"bocateria/internal/session"
	"bocateria/internal/voice"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries every handler the API exposes.
type Deps struct {
	Auth      *auth.Handler
	Menu      *menu.Handler
	MenuAdmin *menu.AdminHandler
	Sessions  *session.Handler
	Assistant *assistant.Handler
	Voice     *voice.Handler

	AllowedOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()

	if len(d.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", d.Auth.Register)
		authGroup.POST("/login", d.Auth.Login)
	}

	// ───────────────────────── MENU ─────────────────────────
	menus := r.Group("/menu")
	{
		menus.GET("", d.Menu.List)
		menus.GET("/drinks", d.Menu.Drinks)
		menus.GET("/more-drinks", d.Menu.MoreDrinks)
		menus.GET("/categories", d.Menu.Categories)
		menus.GET("/allergies", d.Menu.AllergyOptions)
	}

	// ───────────────────────── SESSIONS ─────────────────────────
	r.POST("/sessions", d.Sessions.Create)

	sessions := r.Group("/sessions/:id")
	{
		sessions.GET("/bill", d.Sessions.Bill)
		sessions.POST("/dining", d.Sessions.SetDining)
		sessions.POST("/join", d.Sessions.Join)
		sessions.GET("/join-link", d.Sessions.JoinLink)

		sessions.POST("/cart", d.Sessions.AddToCart)
		sessions.POST("/cart/initiate", d.Sessions.InitiateAddToCart)
		sessions.POST("/cart/finalize", d.Sessions.FinalizeAddToCart)
		sessions.DELETE("/cart/:itemId", d.Sessions.CancelItem)
		sessions.PATCH("/cart/:itemId", d.Sessions.ReassignItem)
		sessions.DELETE("/cart", d.Sessions.ClearBill)
		sessions.POST("/customers/items", d.Sessions.AddItemToCustomer)

		sessions.POST("/pay", d.Sessions.Pay)
		sessions.GET("/history", d.Sessions.History)
		sessions.POST("/reorder", d.Sessions.Reorder)
		sessions.GET("/toasts", d.Sessions.Toasts)

		sessions.GET("/voice", d.Voice.Connect)
		sessions.POST("/ai/read-bill", d.Assistant.ReadBill)
	}

	// ───────────────────────── AI ─────────────────────────
	ai := r.Group("/ai")
	{
		ai.POST("/recommend", d.Assistant.Recommend)
		ai.POST("/popular", d.Assistant.Popular)
		ai.POST("/chat", d.Assistant.Chat)
		ai.POST("/identify-dish", d.Assistant.IdentifyDish)
		ai.POST("/analyze-video", d.Assistant.AnalyzeVideo)
	}

	// ───────────────────────── ADMIN ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleStaff),
	)
	{
		admin.POST("/menu/reset", d.MenuAdmin.Reset)
		admin.POST("/menu/items/:type/:id/image", d.MenuAdmin.UpdateImage)
		admin.POST("/menu/models/:id", d.MenuAdmin.UpdateModel)

		admin.POST("/ai/dish", d.Assistant.CreateDish)
		admin.POST("/ai/items/:type/:id/image", d.Assistant.GenerateImage)

		admin.GET("/dashboard", d.Sessions.Dashboard)
	}

	return r
}
