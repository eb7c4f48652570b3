// Entry point of the reservation API server.  Wires configuration,
// storage, cache, broker and HTTP routing together and starts Echo.
package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-reservation/internal/booking"
	"github.com/iliyamo/venue-reservation/internal/config"
	"github.com/iliyamo/venue-reservation/internal/database"
	"github.com/iliyamo/venue-reservation/internal/handler"
	"github.com/iliyamo/venue-reservation/internal/middleware"
	"github.com/iliyamo/venue-reservation/internal/queue"
	"github.com/iliyamo/venue-reservation/internal/repository"
	"github.com/iliyamo/venue-reservation/internal/router"
	"github.com/iliyamo/venue-reservation/internal/service"
)

func main() {
	// .env is optional; real deployments export their environment.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	venues := repository.NewVenueRepo(db)
	reservations := repository.NewReservationRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	ledger := booking.NewLedger(venues, reservations)
	svc := booking.NewService(venues, reservations, ledger, booking.UUIDMinter{}, service.NewRabbitPublisher(), nil)

	// Consumer mirrors confirmed-reservation events into the audit log.
	// It reconnects on its own; a dead broker must not block startup.
	go func() {
		if err := queue.StartConfirmedConsumer(); err != nil {
			log.Printf("queue consumer: %v", err)
		}
	}()

	rdb := config.NewRedisClient()
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	browseCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e := echo.New()
	e.Use(rateLimit)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterPublic(e, &handler.VenueHandler{Svc: svc}, browseCache)
	router.RegisterReservations(e, &handler.ReservationHandler{Svc: svc}, cfg.JWTSecret)
	router.RegisterStaff(e, &handler.CheckInHandler{Svc: svc}, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
