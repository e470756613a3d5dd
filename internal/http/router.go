package http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/config"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/http/handlers"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/http/middleware"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/cart"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/checkout"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/menu"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/orders"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/profile"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/users"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/notify"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/storeclient"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Cfg *config.Config
	Log *slog.Logger
	DB  *gorm.DB

	Users    *users.Service
	Profiles *profile.Service
	Carts    *cart.Service
	Menu     *menu.Service
	Checkout *checkout.Service
	Notify   *notify.Center
	Store    *storeclient.Client

	Registry   *orders.Registry
	Poller     *orders.Poller
	Controller *orders.Controller

	// BaseCtx is handed to the poller so the cycle survives the request that
	// armed it; main cancels it on shutdown.
	BaseCtx context.Context
}

func NewRouter(d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	sessionCfg := middleware.SessionCfg{
		DB:         d.DB,
		CookieName: d.Cfg.SessionCookie,
		Secure:     d.Cfg.CookieSecure,
		TTL:        d.Cfg.SessionTTL,
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
		middleware.ErrorHandler(d.Log),
		middleware.SessionMiddleware(sessionCfg),
	)

	auth := handlers.NewAuthHandler(d.Users, sessionCfg)
	menuH := handlers.NewMenuHandler(d.Menu)
	cartH := handlers.NewCartHandler(d.Carts, d.Menu)
	profileH := handlers.NewProfileHandler(d.Profiles)
	checkoutH := handlers.NewCheckoutHandler(d.Checkout)
	myOrders := handlers.NewMyOrdersHandler(d.Store)
	board := handlers.NewBoardHandler(d.Registry, d.Poller, d.Controller, d.BaseCtx)
	paymentsH := handlers.NewPaymentsHandler(d.Carts, d.Notify, d.Log)
	notifications := handlers.NewNotificationsHandler(d.Notify)

	api := r.Group("/api")
	{
		api.POST("/auth/register", auth.Register)
		api.POST("/auth/login", auth.Login)
		api.POST("/auth/logout", auth.Logout)
		api.GET("/auth/me", auth.Me)

		api.GET("/menu", menuH.List)
		api.GET("/menu/:slug", menuH.GetBySlug)

		authed := api.Group("", middleware.RequireAuth())
		{
			authed.GET("/cart", cartH.Get)
			authed.POST("/cart/items", cartH.Add)
			authed.DELETE("/cart", cartH.Clear)

			authed.GET("/profile", profileH.Get)
			authed.PUT("/profile", profileH.Update)
			authed.PUT("/profile/address", profileH.SaveAddress)

			authed.POST("/checkout", checkoutH.Finalize)
			authed.GET("/orders/mine", myOrders.List)
			authed.GET("/notifications", notifications.List)
		}

		operator := api.Group("/board", middleware.RequireOperator())
		{
			operator.GET("", board.Get)
			operator.POST("/poll/start", board.StartPolling)
			operator.POST("/poll/stop", board.StopPolling)
			operator.POST("/refresh", board.Refresh)
			operator.GET("/orders/:id", board.GetOrder)
			operator.POST("/orders/:id/select", board.Select)
			operator.DELETE("/selection", board.ClearSelection)
			operator.POST("/orders/:id/transition/:action", board.Transition)
		}

		admin := api.Group("/admin", middleware.RequireOperator())
		{
			admin.POST("/menu", menuH.Create)
			admin.PUT("/menu/:id/price", menuH.SetPrice)
			admin.PUT("/menu/:id/active", menuH.SetActive)
			admin.POST("/menu/:id/image", menuH.UploadImage)
		}
	}

	// Payment provider redirects land outside /api.
	r.GET("/payments/callback/:outcome", paymentsH.Callback)

	return r
}
