package router

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vold333/kitchen-order-ticket/internal/config"
	"github.com/vold333/kitchen-order-ticket/internal/database"
	"github.com/vold333/kitchen-order-ticket/internal/enum"
	"github.com/vold333/kitchen-order-ticket/internal/handler"
	mw "github.com/vold333/kitchen-order-ticket/internal/middleware"
	"github.com/vold333/kitchen-order-ticket/internal/printer"
	"github.com/vold333/kitchen-order-ticket/internal/service"
	"github.com/vold333/kitchen-order-ticket/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Receipts go to sink; pass printer.Unavailable{} when no printer is configured.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub, sink printer.Sink) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/{room}", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	loc := cfg.Location()
	gate := service.NewScheduleGate(queries, loc, time.Now)
	receipts := service.NewReceiptDispatcher(queries, sink, loc)
	orderService := service.NewOrderService(
		pool,
		queries,
		func(db database.DBTX) service.OrderStore {
			return database.New(db)
		},
		gate,
		receipts,
	)

	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret, cfg.AccessTokenTTL)
	userHandler := handler.NewUserHandler(queries)
	tableHandler := handler.NewTableHandler(queries)
	categoryHandler := handler.NewCategoryHandler(queries)
	itemHandler := handler.NewItemHandler(queries)
	commentHandler := handler.NewCookingCommentHandler(queries)
	customerHandler := handler.NewCustomerHandler(queries)
	orderHandler := handler.NewOrderHandler(orderService, queries, receipts, hub, loc)
	scheduleHandler := handler.NewScheduleHandler(queries, gate)

	// Public routes: login, menu browsing and the kiosk flow
	authHandler.RegisterRoutes(r)
	userHandler.RegisterPublicRoutes(r)
	categoryHandler.RegisterPublicRoutes(r)
	itemHandler.RegisterPublicRoutes(r)
	commentHandler.RegisterPublicRoutes(r)
	customerHandler.RegisterPublicRoutes(r)
	orderHandler.RegisterKioskRoutes(r)
	scheduleHandler.RegisterPublicRoutes(r)

	// User creation decides admin rights itself so the first admin can be bootstrapped
	r.Group(func(r chi.Router) {
		r.Use(mw.OptionalAuthenticate(cfg.JWTSecret))
		userHandler.RegisterBootstrapRoutes(r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Floor staff
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.StaffRoles...))
			tableHandler.RegisterRoutes(r)
			customerHandler.RegisterRoutes(r)
			orderHandler.RegisterRoutes(r)
			scheduleHandler.RegisterRoutes(r)
		})

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.UserRoleAdmin))
			userHandler.RegisterRoutes(r)
			tableHandler.RegisterAdminRoutes(r)
			categoryHandler.RegisterAdminRoutes(r)
			itemHandler.RegisterAdminRoutes(r)
			commentHandler.RegisterAdminRoutes(r)
			orderHandler.RegisterAdminRoutes(r)
			scheduleHandler.RegisterAdminRoutes(r)
		})
	})

	log.Println("Router initialized with all handlers")
	return r
}
