package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"comanda/internal/httpx"
	"comanda/internal/logger"
	"comanda/internal/services/auth"
	"comanda/internal/services/catalog"
	"comanda/internal/services/order"
	"comanda/internal/services/seating"
	"comanda/internal/token"
)

// Deps carries everything the route table needs.
type Deps struct {
	Logger  *logger.Logger
	Tokens  *token.Manager
	Auth    *auth.Handler
	Catalog *catalog.Handler
	Seating *seating.Handler
	Order   *order.Handler

	// UploadDir is mounted under /uploads so locally stored images
	// resolve against the backend itself.
	UploadDir string

	// Health reports whether the storage collaborator is reachable.
	Health func(c *gin.Context) bool
}

// New assembles the gin engine and wraps it in an http.Server.
func New(addr string, deps Deps) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), httpx.Logging(deps.Logger))

	r.Static("/uploads", deps.UploadDir)

	r.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{
			"status":    "ok",
			"service":   "comanda",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		if deps.Health != nil && !deps.Health(c) {
			status = http.StatusServiceUnavailable
			body["status"] = "unhealthy"
		}
		c.JSON(status, body)
	})

	// Open routes: registration and token issuing.
	r.POST("/user", deps.Auth.Register)
	r.POST("/login", deps.Auth.Login)
	r.POST("/admin", deps.Auth.AdminLogin)

	bearer := r.Group("", auth.Authenticate(deps.Tokens))
	{
		bearer.GET("/user", deps.Auth.List)
		bearer.GET("/user/email/:email", deps.Auth.GetByEmail)
		bearer.GET("/user/:id", deps.Auth.Get)

		bearer.GET("/products", deps.Catalog.List)

		bearer.GET("/tables", deps.Seating.List)
		bearer.GET("/table/:id", deps.Seating.Get)
		bearer.POST("/table", deps.Seating.Create)
		bearer.PATCH("/table/:id", deps.Seating.Update)
		bearer.DELETE("/table/:id", deps.Seating.Delete)

		bearer.GET("/orders", deps.Order.List)
		bearer.GET("/order/checked", deps.Order.ListChecked)
		bearer.GET("/order/table/:id", deps.Order.ListByTable)
		bearer.GET("/order/account/:id", deps.Order.ListByAccount)
		bearer.POST("/order", deps.Order.Create)
		bearer.PATCH("/order/:id", deps.Order.ToggleStatus)
		bearer.DELETE("/order/:id", deps.Order.Delete)

		admin := bearer.Group("", auth.RequireAdmin())
		{
			admin.PATCH("/user/:id", deps.Auth.ToggleRole)
			admin.POST("/product", deps.Catalog.Create)
			admin.DELETE("/product/:id", deps.Catalog.Delete)
		}
	}

	return &http.Server{
		Addr:    addr,
		Handler: r,
	}
}
