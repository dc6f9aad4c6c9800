package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AgendaVivaBR/salon-scheduler/internal/config"
	dbpkg "github.com/AgendaVivaBR/salon-scheduler/internal/db"
	infraRepo "github.com/AgendaVivaBR/salon-scheduler/internal/infra/repository"
	"github.com/AgendaVivaBR/salon-scheduler/internal/middleware"
	"github.com/AgendaVivaBR/salon-scheduler/internal/notify"
	"github.com/AgendaVivaBR/salon-scheduler/internal/reminder"
	"github.com/AgendaVivaBR/salon-scheduler/internal/routes"
	ucAppointment "github.com/AgendaVivaBR/salon-scheduler/internal/usecase/appointment"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var sender notify.Sender
	if cfg.SMTPEnabled() {
		sender = notify.NewSMTPSender(cfg)
	} else {
		log.Println("SMTP not configured, notifications go to the log")
		sender = notify.LogSender{}
	}

	notifier := notify.NewDispatcher(sender)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.RegisterRoutes(r, db, cfg, notifier)

	// ------------------------------
	// Varredura de lembretes
	// ------------------------------
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	sweepUC := ucAppointment.NewReminderSweep(
		infraRepo.NewAppointmentGormRepository(db),
		sender,
	)

	sweeper := reminder.NewSweeper(
		sweepUC,
		rdb,
		time.Duration(cfg.ReminderIntervalMin)*time.Minute,
	)
	go sweeper.Run(context.Background())

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
