package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/omarKhan56/MuseBot/internal/chat"
	"github.com/omarKhan56/MuseBot/internal/config"
	"github.com/omarKhan56/MuseBot/internal/database"
	"github.com/omarKhan56/MuseBot/internal/handler"
	"github.com/omarKhan56/MuseBot/internal/llm"
	"github.com/omarKhan56/MuseBot/internal/mail"
	"github.com/omarKhan56/MuseBot/internal/middleware"
	"github.com/omarKhan56/MuseBot/internal/payment"
	"github.com/omarKhan56/MuseBot/internal/pricing"
	"github.com/omarKhan56/MuseBot/internal/queue"
	"github.com/omarKhan56/MuseBot/internal/repository"
	"github.com/omarKhan56/MuseBot/internal/router"
	"github.com/omarKhan56/MuseBot/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real environments set vars directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.InitSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: chat sessions fall back to memory, response cache disabled")
	}

	bookingRepo := repository.NewBookingRepo(db)
	ticketRepo := repository.NewTicketRepo(db)
	analyticsRepo := repository.NewAnalyticsRepo(db)

	prices := pricing.Default()
	gateway := payment.NewClient(payment.Config{
		KeyID:     cfg.RazorpayKeyID,
		KeySecret: cfg.RazorpayKeySecret,
	})

	var notifier service.Notifier
	mailer := mail.New(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
	})
	if mailer.Enabled() {
		notifier = mailer
	} else {
		log.Printf("smtp not configured: confirmation email disabled")
	}

	analyticsSvc := service.NewAnalyticsService(analyticsRepo, queue.PublishAnalyticsEvent)
	ticketSvc := service.NewTicketService(ticketRepo, analyticsSvc)
	bookingSvc := service.NewBookingService(bookingRepo, ticketSvc, analyticsSvc, notifier, prices)
	paymentSvc := service.NewPaymentService(bookingRepo, gateway, analyticsSvc)

	llmClient := llm.NewClient(cfg.GroqAPIKey, cfg.GroqModel)
	if !llmClient.Enabled() {
		log.Printf("groq api key not set: chat replies use the canned fallback")
	}

	// Drain the analytics stream into logs/analytics.log in the background.
	go func() {
		if err := queue.StartAnalyticsConsumer(); err != nil {
			log.Printf("analytics consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	router.Register(e, router.Deps{
		Bookings: handler.NewBookingHandler(bookingSvc),
		Payments: handler.NewPaymentHandler(paymentSvc),
		Tickets:  handler.NewTicketHandler(ticketRepo, bookingRepo, ticketSvc),
		Chat:     handler.NewChatHandler(chat.NewStore(rdb), llmClient, prices),
		Stats:    handler.NewStatsHandler(bookingRepo),
	}, cacheMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
