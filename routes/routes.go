package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"desidine-api/handlers"
	"desidine-api/middleware"
	"desidine-api/models"
	"desidine-api/realtime"
	"desidine-api/services"
)

// Deps carries everything the route tree needs. Handlers receive their
// collaborators through here instead of package globals.
type Deps struct {
	DB          *gorm.DB
	JWTSecret   []byte
	TokenTTL    time.Duration
	OTPSender   services.OTPSender
	OTPTTL      time.Duration
	Gateway     services.PaymentGateway
	Publisher   realtime.Publisher
	Images      services.ImageStore
	AuthLimiter *middleware.RateLimiter
	Hub         *realtime.Hub // optional; nil disables the websocket route
}

func SetupRoutes(r *gin.Engine, d Deps) {
	if d.Publisher == nil {
		d.Publisher = realtime.NoopPublisher{}
	}

	authRequired := middleware.AuthRequired(d.JWTSecret)
	adminOnly := middleware.RoleRequired(models.RoleAdmin)

	// ── Auth (rate limited) ────────────────────────────────────────
	auth := r.Group("/api/auth")
	if d.AuthLimiter != nil {
		auth.Use(d.AuthLimiter.Middleware())
	}
	{
		auth.POST("/signup", handlers.Signup(d.DB, d.OTPSender, d.OTPTTL))
		auth.POST("/verify-otp", handlers.VerifyOTP(d.DB))
		auth.POST("/login", handlers.Login(d.DB, d.JWTSecret, d.TokenTTL))
		auth.POST("/forgot-password", handlers.ForgotPassword(d.DB, d.OTPSender, d.OTPTTL))
		auth.POST("/reset-password", handlers.ResetPassword(d.DB))
		auth.POST("/resend-otp", handlers.ResendOTP(d.DB, d.OTPSender, d.OTPTTL))
		auth.PUT("/update-profile", authRequired, handlers.UpdateProfile(d.DB))
		auth.GET("/profile", authRequired, handlers.GetProfile(d.DB))
	}

	// ── Addresses ──────────────────────────────────────────────────
	address := r.Group("/api/address", authRequired)
	{
		address.GET("", handlers.ListAddresses(d.DB))
		address.POST("", handlers.AddAddress(d.DB))
		address.PUT("/:id", handlers.UpdateAddress(d.DB))
		address.DELETE("/:id", handlers.DeleteAddress(d.DB))
		address.PATCH("/:id/default", handlers.SetDefaultAddress(d.DB))
	}

	// ── Catalog ────────────────────────────────────────────────────
	restaurant := r.Group("/api/restaurant")
	{
		restaurant.GET("", handlers.GetNearbyRestaurants(d.DB))
		restaurant.POST("", authRequired, adminOnly, handlers.AddRestaurant(d.DB))
		restaurant.GET("/:id/menu", handlers.GetRestaurantMenu(d.DB))
	}

	menu := r.Group("/api/menu")
	{
		menu.GET("", handlers.ListMenuItems(d.DB))
		menu.POST("", authRequired, adminOnly, handlers.AddMenuItem(d.DB))
		menu.PUT("/:id", authRequired, adminOnly, handlers.UpdateMenuItem(d.DB))
		menu.DELETE("/:id", authRequired, adminOnly, handlers.DeleteMenuItem(d.DB))
	}

	// ── Cart ───────────────────────────────────────────────────────
	cart := r.Group("/api/cart", authRequired)
	{
		cart.GET("", handlers.GetCart(d.DB))
		cart.POST("/add", handlers.AddToCart(d.DB))
		cart.PUT("/update", handlers.UpdateCartItem(d.DB))
		cart.DELETE("/remove", handlers.RemoveCartItem(d.DB))
		cart.DELETE("/clear", handlers.ClearCart(d.DB))
	}

	// ── Orders ─────────────────────────────────────────────────────
	order := r.Group("/api/order", authRequired)
	{
		order.POST("/place", handlers.PlaceOrder(d.DB))
		order.GET("/user/:id", handlers.GetUserOrders(d.DB))
		order.PUT("/:orderId/status", adminOnly, handlers.UpdateOrderStatus(d.DB, d.Publisher))
		order.PUT("/:orderId/cancel", handlers.CancelOrder(d.DB, d.Publisher))
	}

	// ── Payments ───────────────────────────────────────────────────
	payment := r.Group("/api/payment")
	{
		payment.POST("/initiate", authRequired, handlers.InitiatePayment(d.DB, d.Gateway))
		payment.POST("/verify", handlers.VerifyPayment(d.DB))
		payment.POST("/upi/verify", handlers.VerifyUPIPayment(d.DB, d.Publisher))
		payment.GET("/upi/status/:orderId", handlers.GetUPIPaymentStatus(d.DB))
		payment.POST("/paytm", handlers.InitiatePaytm())
		payment.POST("/phonepe", handlers.InitiatePhonePe())
	}

	// ── Notifications ──────────────────────────────────────────────
	notification := r.Group("/api/notification")
	{
		notification.GET("/:userId", handlers.GetUserNotifications(d.DB))
		notification.POST("", handlers.CreateNotification(d.DB))
		notification.PATCH("/:id/read", handlers.MarkNotificationRead(d.DB))
		notification.DELETE("/:id", handlers.DeleteNotification(d.DB))
		notification.POST("/token", authRequired, handlers.RegisterDeviceToken(d.DB))
	}

	// ── Offers & reviews ───────────────────────────────────────────
	offer := r.Group("/api/offer")
	{
		offer.POST("", authRequired, adminOnly, handlers.AddOffer(d.DB))
		offer.GET("", handlers.GetAllOffers(d.DB))
		offer.POST("/validate", handlers.ValidateOffer(d.DB))
	}

	review := r.Group("/api/review")
	{
		review.POST("", authRequired, handlers.AddReview(d.DB))
		review.GET("/:restaurantId", handlers.GetRestaurantReviews(d.DB))
		review.GET("/:restaurantId/average", handlers.GetAverageRating(d.DB))
	}

	// ── Uploads ────────────────────────────────────────────────────
	r.POST("/api/upload/image", authRequired, handlers.UploadImage(d.Images))

	// ── Realtime order tracking ────────────────────────────────────
	if d.Hub != nil {
		r.GET("/ws/orders/:orderId", d.Hub.ServeWS)
	}
}
