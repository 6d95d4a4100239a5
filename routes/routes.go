package routes

import (
	"strings"
	"time"

	"localconnect/config"
	"localconnect/handlers"
	"localconnect/middleware"
	"localconnect/models"
	"localconnect/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers customer auth endpoints under /api/auth and
// the legacy /api/users aliases.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	for _, prefix := range []string{"/api/auth", "/api/users"} {
		api := r.Group(prefix)
		{
			api.POST("/signup", hb.Auth.SignupHandler)
			api.POST("/login", hb.Auth.LoginHandler)

			// Protected routes (Require Authentication)
			protected := api.Group("")
			protected.Use(middleware.JWTAuthUserMiddleware(hb.Sessions))
			protected.GET("/current", hb.Auth.CurrentUserHandler)
			protected.POST("/logout", hb.Auth.LogoutHandler)
		}
	}
}

// RegisterWorkerRoutes registers worker accounts and worker profiles.
func RegisterWorkerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/worker-auth")
	{
		api.POST("/signup", hb.Worker.SignupHandler)
		api.POST("/login", hb.Worker.LoginHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthWorkerMiddleware(hb.Sessions))
		protected.GET("/current", hb.Worker.CurrentWorkerHandler)
		protected.POST("/logout", hb.Worker.LogoutHandler)
		protected.PUT("/fcm-token", hb.Worker.UpdateFCMTokenHandler)
		protected.GET("/profiles", hb.Worker.MyProfilesHandler)
	}

	form := r.Group("/api/worker-form")
	{
		// A logged-in worker's profile is linked to the account.
		form.POST("", middleware.OptionalWorkerAuth(hb.Sessions), hb.Listing.CreateWorkerProfileHandler)
		form.GET("/all", hb.Listing.ListWorkersHandler)
		form.GET("/by-type/:type", hb.Listing.ListWorkersByTypeHandler)
	}
}

// RegisterTicketRoutes registers resale ticket listings.
func RegisterTicketRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tickets")
	{
		api.POST("/concert", hb.Listing.CreateTicketHandler(models.TicketKindConcert))
		api.GET("/concert", hb.Listing.ListTicketsHandler(models.TicketKindConcert))
		api.POST("/festivals", hb.Listing.CreateTicketHandler(models.TicketKindFestival))
		api.GET("/festivals", hb.Listing.ListTicketsHandler(models.TicketKindFestival))
		api.GET("/:id", hb.Listing.GetTicketHandler)
	}
}

// RegisterCartRoutes registers the cart endpoints. Carts are addressed by the
// X-Cart-ID header and need no account.
func RegisterCartRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/cart")
	{
		api.GET("", hb.Cart.GetCartHandler)
		api.DELETE("", hb.Cart.ClearCartHandler)
		api.POST("/items", hb.Cart.AddItemHandler)
		api.DELETE("/items/:category/:itemId", hb.Cart.RemoveItemHandler)
		api.PATCH("/items/:category/:itemId", hb.Cart.SetQuantityHandler)
		api.PUT("/active", hb.Cart.SetActiveHandler)
		api.POST("/promo", hb.Cart.ApplyPromoHandler)
	}
}

// RegisterOrderRoutes registers checkout, orders and payment endpoints.
func RegisterOrderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	optionalUser := middleware.OptionalUserAuth(hb.Sessions)

	r.POST("/api/checkout", optionalUser, hb.Checkout.CheckoutHandler)
	r.POST("/api/create-checkout-session", hb.Payment.CreateCheckoutSessionHandler)
	r.POST("/api/webhooks/stripe", hb.Payment.StripeWebhookHandler)

	api := r.Group("/api/orders")
	{
		api.POST("", optionalUser, hb.Order.CreateOrderHandler)
		api.GET("/worker", middleware.JWTAuthWorkerMiddleware(hb.Sessions), hb.Worker.WorkerOrdersHandler)
		api.GET("/:id", hb.Order.GetOrderHandler)
		api.GET("/:id/success", hb.Order.PaymentSuccessHandler)
	}
}

// RegisterReviewRoutes registers customer reviews.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.POST("", hb.Review.SubmitReviewHandler)
		api.GET("", hb.Review.ListReviewsHandler)
		api.GET("/published", hb.Review.ListPublishedReviewsHandler)
	}
}

// RegisterAIRoutes registers the chat assistant and speech-to-text.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ai")
	{
		api.POST("/chat", hb.AI.ChatHandler)
		api.DELETE("/chat/:sessionId", hb.AI.ResetChatHandler)
		api.POST("/stt", hb.STT.TranscribeHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// allowOrigin admits any localhost origin plus the configured ones.
func allowOrigin(origin string) bool {
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:") {
		return true
	}
	for _, allowed := range config.AppConfig.AllowedOrigins {
		if strings.EqualFold(strings.TrimRight(allowed, "/"), origin) {
			return true
		}
	}
	return false
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  allowOrigin,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", handlers.CartIDHeader},
		ExposeHeaders:    []string{"Content-Length", handlers.CartIDHeader, "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterWorkerRoutes(r, hb)
	RegisterTicketRoutes(r, hb)
	RegisterCartRoutes(r, hb)
	RegisterOrderRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterAIRoutes(r, hb)
	RegisterHealthRoute(r)

	r.NoRoute(utils.NotFoundHandler)
}
