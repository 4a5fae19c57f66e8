package routes

import (
	"log/slog"

	"restaurant-ordering-api/handlers"
	"restaurant-ordering-api/metrics"
	"restaurant-ordering-api/middleware"
	"restaurant-ordering-api/uploads"

	"github.com/gin-gonic/gin"
)

// Deps is everything the router needs from main.
type Deps struct {
	Handler     *handlers.Handler
	Tokens      *middleware.TokenManager
	Permissions *middleware.Permissions
	UploadDir   string
	CORSOrigin  string
	Logger      *slog.Logger
}

// NewEngine builds the gin engine with the global middleware chain and all
// routes registered.
func NewEngine(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.CORS(d.CORSOrigin),
		middleware.RequestLogger(d.Logger),
		metrics.Middleware(),
	)
	SetupRoutes(r, d)
	return r
}

func SetupRoutes(r *gin.Engine, d Deps) {
	h := d.Handler
	auth := middleware.AuthRequired(d.Tokens)
	admin := d.Permissions.RequireAdministrator()
	menuManage := d.Permissions.RequireMenuManage()

	r.GET("/", h.Index)
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.Static(uploads.URLPrefix, d.UploadDir)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/register", h.Register)
		public.POST("/login", h.Login)
		public.GET("/menu", h.ListMenu)
	}

	// ── Menu management: admin with menu rights ────────────────────
	menu := r.Group("/api/menu")
	menu.Use(auth, admin, menuManage)
	{
		menu.POST("", h.CreateMenuItem)
		menu.PUT("/:id", h.UpdateMenuItem)
		menu.DELETE("/:id", h.DeleteMenuItem)
	}

	// ── Orders ─────────────────────────────────────────────────────
	r.POST("/api/orders", auth, h.PlaceOrder)

	orders := r.Group("/api/orders")
	orders.Use(auth, admin)
	{
		orders.GET("", h.ListOrders)
		orders.PUT("/:id", h.UpdateOrderStatus)
		orders.DELETE("/:id", h.DeleteOrder)
		orders.GET("/:id/history", h.OrderHistory)
	}
}
