package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danuartha/delivery-app/controllers"
	"github.com/danuartha/delivery-app/events"
	"github.com/danuartha/delivery-app/middlewares"
	"github.com/danuartha/delivery-app/models"
	"github.com/danuartha/delivery-app/services"
)

// SetupRouter merangkai seluruh route beserta capability set-nya.
// Route tanpa RequireRoles adalah operasi publik; RoleAny berarti cukup
// login, role apa pun.
func SetupRouter(db *gorm.DB, hub *events.Hub, paymentSvc *services.PaymentService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Batas umum per IP untuk semua endpoint; login/register punya limiter
	// ketat sendiri di bawah.
	apiLimiter := middlewares.NewRateLimiter(100, 60)
	r.Use(apiLimiter.RateLimit())

	// Principal resolver jalan untuk semua route; route publik tetap lewat
	// walau context kosong.
	r.Use(middlewares.AuthMiddleware(db))

	orderSvc := services.NewOrderService(db, hub)

	userCtrl := controllers.NewUserController(db)
	restaurantCtrl := controllers.NewRestaurantController(db)
	dishCtrl := controllers.NewDishController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	orderCtrl := controllers.NewOrderController(orderSvc)
	paymentCtrl := controllers.NewPaymentController(paymentSvc)
	streamCtrl := controllers.NewStreamController(hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/users", userCtrl.Register)
		public.POST("/users/login", userCtrl.Login)
	}
	r.POST("/users/verify", userCtrl.VerifyEmail)

	r.GET("/restaurants", restaurantCtrl.GetAllRestaurants)
	r.GET("/restaurants/:restaurant_id", restaurantCtrl.GetRestaurantByID)
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/categories/:cat_id/restaurants", categoryCtrl.GetRestaurantsByCategory)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	r.GET("/users/me", middlewares.RequireRoles(models.RoleAny), userCtrl.GetProfile)
	r.PATCH("/users/me", middlewares.RequireRoles(models.RoleAny), userCtrl.EditProfile)

	// RESTAURANTS (owner)
	owner := middlewares.RequireRoles(models.RoleOwner)
	r.POST("/restaurants", owner, restaurantCtrl.CreateRestaurant)
	r.GET("/restaurants/mine", owner, restaurantCtrl.GetMyRestaurants)
	r.PATCH("/restaurants/:restaurant_id", owner, restaurantCtrl.UpdateRestaurant)
	r.DELETE("/restaurants/:restaurant_id", owner, restaurantCtrl.DeleteRestaurant)

	// DISHES (owner)
	r.POST("/restaurants/:restaurant_id/dishes", owner, dishCtrl.CreateDish)
	r.PATCH("/restaurants/:restaurant_id/dishes/:dish_id", owner, dishCtrl.UpdateDish)
	r.DELETE("/restaurants/:restaurant_id/dishes/:dish_id", owner, dishCtrl.DeleteDish)

	// ORDERS
	r.POST("/orders", middlewares.RequireRoles(models.RoleClient), orderCtrl.CreateOrder)
	r.GET("/orders", middlewares.RequireRoles(models.RoleAny), orderCtrl.GetOrders)
	r.GET("/orders/:order_id", middlewares.RequireRoles(models.RoleAny), orderCtrl.GetOrderByID)
	r.PATCH("/orders/:order_id", middlewares.RequireRoles(models.RoleAny), orderCtrl.EditOrder)
	r.PUT("/orders/:order_id/take", middlewares.RequireRoles(models.RoleDelivery), orderCtrl.TakeOrder)

	// PAYMENTS (owner)
	r.POST("/payments", owner, paymentCtrl.CreatePayment)
	r.GET("/payments", owner, paymentCtrl.GetPayments)

	// REALTIME FEEDS (websocket; token lewat query param)
	ws := r.Group("/ws")
	{
		ws.GET("/pending-orders", middlewares.RequireRoles(models.RoleOwner), streamCtrl.PendingOrders)
		ws.GET("/cooked-orders", middlewares.RequireRoles(models.RoleDelivery), streamCtrl.CookedOrders)
		ws.GET("/orders/:order_id/updates", middlewares.RequireRoles(models.RoleAny), streamCtrl.OrderUpdates)
	}

	return r
}
