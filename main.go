package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/example/codereps/internal/api"
	"github.com/example/codereps/internal/auth"
	"github.com/example/codereps/internal/config"
	"github.com/example/codereps/internal/database"
	"github.com/example/codereps/internal/excel"
	"github.com/example/codereps/internal/logger"
	"github.com/example/codereps/internal/notify"
	"github.com/example/codereps/internal/review"
	"github.com/example/codereps/internal/scheduler"
)

func main() {
	importFile := flag.String("import", "", "import catalog problems from an .xlsx or .csv file and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer appLog.Sync()

	store, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("failed to connect to database", "error", err)
	}
	defer store.Close()

	if *importFile != "" {
		result, err := excel.ImportProblems(context.Background(), store, excel.DefaultImportConfig(*importFile))
		if err != nil {
			appLog.Fatal("catalog import failed", "error", err)
		}
		appLog.Info("catalog import finished",
			"processed", result.TotalProcessed,
			"created", result.Created,
			"updated", result.Updated,
			"skipped", result.Skipped,
			"errors", len(result.Errors))
		for _, e := range result.Errors {
			appLog.Warn("import error", "detail", e)
		}
		return
	}

	verifier := auth.Init(cfg.FirebaseProjectID)
	service := review.NewService(store, appLog)

	if cfg.LogMode == "prod" || cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.RouterConfig{
		Service:        service,
		Notifications:  store,
		Verifier:       verifier,
		AllowedOrigins: cfg.AllowedOrigins,
		Log:            appLog,
	})

	var reminders *scheduler.Scheduler
	if cfg.TelegramBotToken != "" {
		notifier, err := notify.NewTelegram(cfg.TelegramBotToken)
		if err != nil {
			appLog.Fatal("failed to create telegram notifier", "error", err)
		}
		reminders = scheduler.New(store, notifier, appLog)
		if err := reminders.Start(); err != nil {
			appLog.Fatal("failed to start reminder scheduler", "error", err)
		}
	} else {
		appLog.Info("TELEGRAM_BOT_TOKEN not set, reminders disabled")
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}

	go func() {
		appLog.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("server error", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.Info("shutting down", "signal", sig.String())

	if reminders != nil {
		reminders.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("shutdown error", "error", err)
	}
}
