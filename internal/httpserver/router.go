package httpserver

import (
	"log"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/realtime"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/repository/image"
	authsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/auth"
	cartsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/cart"
	catalogsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/catalog"
	categorysvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/category"
	checkoutsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/checkout"
	customersvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/customer"
	ordersvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/order"
	otpsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/otp"
)

// Deps carries the services the handlers call into.
type Deps struct {
	Auth       *authsvc.Service
	Catalog    *catalogsvc.Service
	Cart       *cartsvc.Service
	Checkout   *checkoutsvc.Service
	Otp        *otpsvc.Service
	Orders     *ordersvc.Service
	Customers  *customersvc.Service
	Categories *categorysvc.Service
	Images     *image.Store
	Hub        *realtime.Hub
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, client *mongo.Client, deps Deps, corsOrigins string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestIDMiddleware(), gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(corsOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(client))

	authn := authRequired(deps.Auth)
	admin := adminRequired()

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", registerHandler(deps.Auth))
			auth.POST("/login", loginHandler(deps.Auth))
			auth.POST("/forgot-password", forgotPasswordHandler(deps.Auth))
			auth.POST("/reset-password", resetPasswordHandler(deps.Auth))
		}

		sweets := api.Group("/sweets")
		{
			sweets.GET("", listSweetsHandler(deps.Catalog, false))
			sweets.GET("/:id", getSweetHandler(deps.Catalog))
			sweets.GET("/:id/quantity", sweetQuantityHandler(deps.Catalog))

			sweets.GET("/all", authn, admin, listSweetsHandler(deps.Catalog, true))
			sweets.POST("", authn, admin, createSweetHandler(deps.Catalog))
			sweets.PUT("/:id", authn, admin, updateSweetHandler(deps.Catalog))
			sweets.DELETE("/:id", authn, admin, deleteSweetHandler(deps.Catalog))
			sweets.PATCH("/:id/toggle-visible", authn, admin, toggleSweetHandler(deps.Catalog))
			sweets.POST("/:id/restock", authn, admin, restockSweetHandler(deps.Catalog))
			sweets.POST("/:id/image", authn, admin, uploadSweetImageHandler(deps.Catalog, deps.Images))
		}
		api.GET("/uploads/:id", downloadImageHandler(deps.Images))

		cart := api.Group("/cart", authn)
		{
			cart.GET("", getCartHandler(deps.Cart))
			cart.PUT("", upsertCartHandler(deps.Cart))
			cart.DELETE("/:sweetId", removeCartHandler(deps.Cart))
		}

		checkout := api.Group("/checkout", authn)
		{
			checkout.POST("/send-otp", sendOtpHandler(deps.Otp))
			checkout.POST("/verify-otp", verifyOtpHandler(deps.Otp))
			checkout.POST("/place-order", placeOrderHandler(deps.Checkout))
		}

		orders := api.Group("/orders")
		{
			orders.GET("/mine", authn, myOrdersHandler(deps.Auth))
			orders.GET("", authn, admin, listOrdersHandler(deps.Orders))
			orders.GET("/:id", authn, admin, getOrderHandler(deps.Orders))
			orders.PATCH("/:id/status", authn, admin, updateOrderStatusHandler(deps.Orders))
		}

		customers := api.Group("/customers", authn, admin)
		{
			customers.GET("", listCustomersHandler(deps.Customers))
			customers.PUT("/:id", updateCustomerHandler(deps.Customers))
			customers.PATCH("/:id/deactivate", deactivateCustomerHandler(deps.Customers))
			customers.PATCH("/:id/ban", banCustomerHandler(deps.Customers))
		}

		categories := api.Group("/categories")
		{
			categories.GET("", listCategoriesHandler(deps.Categories))
			categories.POST("", authn, admin, createCategoryHandler(deps.Categories))
			categories.PUT("/:id", authn, admin, updateCategoryHandler(deps.Categories))
			categories.DELETE("/:id", authn, admin, deleteCategoryHandler(deps.Categories))
		}

		api.GET("/events", eventsHandler(deps.Hub))
	}

	return router
}

func corsConfig(origins string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if origins == "" || origins == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = strings.Split(origins, ",")
	return cfg
}
