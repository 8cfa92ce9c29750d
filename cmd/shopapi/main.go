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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Makepad-fr/shopfront/internal/config"
	"github.com/Makepad-fr/shopfront/internal/devapi"
	"github.com/Makepad-fr/shopfront/internal/logging"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file to load")
	flag.Parse()

	boot, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	if err := config.LoadEnv(*envFile); err != nil {
		boot.Fatal("load env", zap.Error(err))
	}
	cfg, err := config.LoadServer()
	if err != nil {
		boot.Fatal("config", zap.Error(err))
	}

	log, err := logging.NewServer(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	users := devapi.NewDirectory()
	if err := devapi.SeedUsers(users); err != nil {
		log.Fatal("seed users", zap.Error(err))
	}
	srv := devapi.NewServer(devapi.Config{
		JWTSecret:    cfg.JWTSecret,
		JWTExpiry:    cfg.JWTExpiry,
		AllowOrigins: cfg.Origins,
	}, users, log)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server starting", zap.String("addr", httpSrv.Addr), zap.String("env", cfg.AppEnv))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
