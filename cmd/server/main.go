package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/cataloghub/product-service/config"
	"github.com/cataloghub/product-service/internal/app"
	"github.com/cataloghub/product-service/internal/pkg/clock"
	"github.com/cataloghub/product-service/internal/product"
	"github.com/cataloghub/product-service/internal/productapi"
	"github.com/cataloghub/product-service/internal/report"
	"github.com/cataloghub/product-service/internal/webserver"
)

var (
	conffile = flag.String("c", "catalog.yml", "config file path")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
)

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init()
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	store := product.NewGormStore(application.DB())
	service := product.NewService(store, report.NewGenerator(), clock.RealClock{})

	server := webserver.NewWebServer(cfg)
	productapi.NewHandler(service).Register(server.Echo())

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalf("web server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	zap.S().Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.S().Errorf("shutdown error: %v", err)
	}
}
