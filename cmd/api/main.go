package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/config"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/db"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/httpserver"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/notify"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/realtime"
	cartrepo "github.com/masoombaba16/Sweet-Shop-Management/internal/repository/cart"
	categoryrepo "github.com/masoombaba16/Sweet-Shop-Management/internal/repository/category"
	customerrepo "github.com/masoombaba16/Sweet-Shop-Management/internal/repository/customer"
	"github.com/masoombaba16/Sweet-Shop-Management/internal/repository/image"
	orderrepo "github.com/masoombaba16/Sweet-Shop-Management/internal/repository/order"
	otprepo "github.com/masoombaba16/Sweet-Shop-Management/internal/repository/otp"
	sweetrepo "github.com/masoombaba16/Sweet-Shop-Management/internal/repository/sweet"
	userrepo "github.com/masoombaba16/Sweet-Shop-Management/internal/repository/user"
	authsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/auth"
	cartsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/cart"
	catalogsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/catalog"
	categorysvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/category"
	checkoutsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/checkout"
	customersvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/customer"
	ordersvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/order"
	otpsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/otp"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	client, err := db.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	database := client.Database(cfg.MongoDB)

	var mailer notify.Sender = notify.Discard{}
	if cfg.SMTPUser != "" {
		mailer = notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, logger)
	} else {
		logger.Printf("no smtp credentials, mail delivery disabled")
	}

	hub := realtime.NewHub(logger)

	sweetRepo := sweetrepo.NewMongo(database, logger)
	cartRepo := cartrepo.NewMongo(database)
	userRepo := userrepo.NewMongo(database, logger)
	otpRepo := otprepo.NewMongo(database)
	orderRepo := orderrepo.NewMongo(database)
	customerRepo := customerrepo.NewMongo(database)
	categoryRepo := categoryrepo.NewMongo(database)
	imageStore, err := image.NewStore(database, logger)
	if err != nil {
		logger.Fatalf("init image store: %v", err)
	}

	otpService := otpsvc.New(otpRepo, userRepo, mailer, cfg.OrderOtpTTL, cfg.ResetOtpTTL, logger)
	authService := authsvc.New(userRepo, otpService, mailer, cfg.JWTSecret, cfg.JWTTTL, logger)
	catalogService := catalogsvc.New(sweetRepo, hub, logger)
	cartService := cartsvc.New(cartRepo, sweetRepo)
	orderService := ordersvc.New(orderRepo)
	customerService := customersvc.New(customerRepo)
	categoryService := categorysvc.New(categoryRepo)

	checkoutService := checkoutsvc.New(sweetRepo, cartRepo, userRepo, orderRepo, customerRepo, otpService, cfg.OtpConsumeGrace, logger)
	checkoutService.AddHook(checkoutsvc.MailHook(mailer, logger))
	checkoutService.AddHook(checkoutsvc.StockEventsHook(hub))

	srv := httpserver.New(cfg.HTTPAddr, logger, client, httpserver.Deps{
		Auth:       authService,
		Catalog:    catalogService,
		Cart:       cartService,
		Checkout:   checkoutService,
		Otp:        otpService,
		Orders:     orderService,
		Customers:  customerService,
		Categories: categoryService,
		Images:     imageStore,
		Hub:        hub,
	}, cfg.CORSOrigins)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
