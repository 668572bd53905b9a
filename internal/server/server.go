// Package server boots the storefront: config, store driver, services,
// background workers and the HTTP surface.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/looklush/storefront/app/controllers"
	"github.com/looklush/storefront/app/jobs"
	"github.com/looklush/storefront/app/models"
	"github.com/looklush/storefront/app/notifications"
	"github.com/looklush/storefront/app/routes"
	"github.com/looklush/storefront/app/services"
	"github.com/looklush/storefront/config"
	"github.com/looklush/storefront/database/seeders"
	"github.com/looklush/storefront/pkg/database"
	"github.com/looklush/storefront/pkg/event"
	"github.com/looklush/storefront/pkg/kvstore"
	"github.com/looklush/storefront/pkg/logger"
	"github.com/looklush/storefront/pkg/metrics"
	"github.com/looklush/storefront/pkg/middleware"
	"github.com/looklush/storefront/pkg/migration"
	"github.com/looklush/storefront/pkg/notification"
	"github.com/looklush/storefront/pkg/queue"
	"github.com/looklush/storefront/pkg/reqid"
	"github.com/looklush/storefront/pkg/router"
	"github.com/looklush/storefront/pkg/schedule"
	"github.com/looklush/storefront/pkg/session"
	"github.com/looklush/storefront/pkg/storage"
	"github.com/looklush/storefront/pkg/ws"
)

// lowStockThreshold triggers the back-office warning after checkout.
const lowStockThreshold = 5

// Services is the fully wired service graph.
type Services struct {
	Catalog  *services.Catalog
	Carts    *services.Carts
	Checkout *services.Checkout
	Orders   *services.Orders
	Audit    *services.Audit
	Users    *services.Users
	Auth     *services.Auth
	Contact  *services.Contact
	Messages *services.Messages
}

// openStore selects the persistence driver from configuration. The
// database driver pairs with an in-process ephemeral for buy-now slots;
// Redis uses native TTLs for both roles.
func openStore() (kvstore.Store, kvstore.Ephemeral, error) {
	switch config.StoreDriver() {
	case "redis":
		rs, err := kvstore.NewRedis(config.RedisAddr(), config.RedisPassword(), "storefront")
		if err != nil {
			return nil, nil, err
		}
		return rs, rs, nil

	case "memory":
		mem := kvstore.NewMemory()
		return mem, mem, nil

	default:
		if err := database.Connect(); err != nil {
			return nil, nil, err
		}
		runner := migration.New(database.DB)
		if err := runner.Run(); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return kvstore.NewDatabase(database.DB), kvstore.NewMemory(), nil
	}
}

// buildServices constructs the service graph over the chosen store.
func buildServices(store kvstore.Store, slots kvstore.Ephemeral) *Services {
	users := services.NewUsers(store)
	catalog := services.NewCatalog(store)
	carts := services.NewCarts(store)
	orders := services.NewOrders(store)

	return &Services{
		Catalog:  catalog,
		Carts:    carts,
		Orders:   orders,
		Checkout: services.NewCheckout(catalog, carts, orders, slots, services.SimulatedGateway{}, services.ClearMode(config.CheckoutClearMode())),
		Audit:    services.NewAudit(store),
		Users:    users,
		Auth:     services.NewAuth(users, store),
		Contact:  services.NewContact(store),
		Messages: services.NewMessages(store),
	}
}

// wireListeners connects domain events to the queue, the notification
// channels and the admin event feed.
func wireListeners(svc *Services, feed *ws.Hub) {
	backoffice := config.Get("BACKOFFICE_EMAIL", "orders@looklush.com")

	event.Listen("order.placed", func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}

		if err := queue.Dispatch(&jobs.OrderConfirmationJob{Order: order}); err != nil {
			logger.Error("dispatch order confirmation", "order_id", order.ID, "err", err)
		}

		for _, item := range order.Items {
			product, ok := svc.Catalog.Get(item.Product.ID)
			if ok && product.StockQuantity <= lowStockThreshold {
				notification.SendAsync(backoffice, notifications.LowStockNotification{
					Product:   product,
					Threshold: lowStockThreshold,
				})
			}
		}

		broadcast(feed, "order.placed", order)
	})

	event.Listen("message.received", func(payload interface{}) {
		msg, ok := payload.(models.ContactMessage)
		if !ok {
			return
		}

		notification.SendAsync(backoffice, notifications.NewMessageNotification{Message: msg})
		metrics.UnreadMessages.Set(float64(svc.Messages.UnreadCount()))
		broadcast(feed, "message.received", msg)
	})
}

func broadcast(feed *ws.Hub, kind string, payload interface{}) {
	if feed == nil {
		return
	}
	data, err := json.Marshal(map[string]interface{}{"event": kind, "payload": payload})
	if err != nil {
		return
	}
	feed.Broadcast <- data
}

// scheduleTasks registers the periodic maintenance work.
func scheduleTasks(svc *Services, store kvstore.Store) {
	schedule.Every(1).Minutes().Name("refresh-gauges").Run(func() {
		metrics.UnreadMessages.Set(float64(svc.Messages.UnreadCount()))

		inStock := 0
		for _, p := range svc.Catalog.Products() {
			if p.InStock {
				inStock++
			}
		}
		metrics.ProductsInStock.Set(float64(inStock))
	})

	if mem, ok := store.(*kvstore.Memory); ok {
		schedule.Every(5).Minutes().Name("sweep-expired").WithoutOverlapping().Run(func() {
			if n := mem.Sweep(); n > 0 {
				logger.Debug("store: swept expired keys", "count", n)
			}
		})
	}
}

// Build assembles the full application and returns the router. Split from
// Start so the CLI can introspect routes without listening.
func Build() (*router.Router, *Services, error) {
	if err := config.Load(); err != nil {
		return nil, nil, err
	}

	if uri := config.LogMongoURI(); uri != "" {
		if _, err := logger.EnableMongoSink(uri, "storefront", "logs"); err != nil {
			logger.Warn("mongo log sink unavailable", "err", err)
		}
	}

	store, slots, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	svc := buildServices(store, slots)

	// Database-backed runs seed through the seeder pipeline; the other
	// drivers rely on the services' own first-run seeds.
	if database.DB != nil {
		if err := seeders.RunAll(database.DB); err != nil {
			logger.Warn("seed", "err", err)
		}
	}

	storage.Connect()
	notification.SetSlackWebhook(config.Get("SLACK_WEBHOOK_URL", ""))
	jobs.RegisterAll()

	if config.StoreDriver() == "redis" {
		queue.SetDriver(queue.NewRedisDriver(redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr(),
			Password: config.RedisPassword(),
		})))
	}

	// Browser sessions carry no token; resolve them against the
	// persisted session record.
	middleware.SetSessionResolver(func(r *http.Request) (middleware.Identity, bool) {
		sid := session.ID(r)
		if sid == "" {
			return middleware.Identity{}, false
		}
		user, ok := svc.Auth.CurrentUser(sid)
		if !ok {
			return middleware.Identity{}, false
		}
		return middleware.Identity{UserID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin}, true
	})

	feed := ws.NewHub()
	go feed.Run()
	wireListeners(svc, feed)
	scheduleTasks(svc, store)

	graphqlCtrl, err := controllers.NewGraphQLController(svc.Catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("graphql schema: %w", err)
	}

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		session.Middleware(session.DefaultOptions()),
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(200, time.Minute),
	)
	r.HandleFunc("/metrics", metrics.Handler())

	routes.Register(r, routes.Controllers{
		Auth:     controllers.NewAuthController(svc.Auth),
		Catalog:  controllers.NewCatalogController(svc.Catalog),
		Cart:     controllers.NewCartController(svc.Carts, svc.Catalog),
		Checkout: controllers.NewCheckoutController(svc.Checkout, svc.Orders),
		Contact:  controllers.NewContactController(svc.Contact, svc.Messages),
		GraphQL:  graphqlCtrl,

		AdminProducts: controllers.NewAdminProductsController(svc.Catalog, svc.Audit),
		AdminUsers:    controllers.NewAdminUsersController(svc.Users, svc.Audit),
		AdminMessages: controllers.NewAdminMessagesController(svc.Messages, svc.Audit),
		AdminAudit:    controllers.NewAdminAuditController(svc.Audit),
		AdminContact:  controllers.NewAdminContactController(svc.Contact, svc.Audit),
		AdminOrders:   controllers.NewAdminOrdersController(svc.Orders),

		EventFeed: feed,
	})

	return r, svc, nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains.
func Start() error {
	r, _, err := Build()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, 4)
	schedule.Start(ctx)

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", "addr", addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
