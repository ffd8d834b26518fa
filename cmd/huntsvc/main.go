package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/huntmaster/hunt-services/configs"
	"github.com/huntmaster/hunt-services/internal/comm"
	"github.com/huntmaster/hunt-services/internal/huntsvc/auth"
	"github.com/huntmaster/hunt-services/internal/huntsvc/broker"
	"github.com/huntmaster/hunt-services/internal/huntsvc/db"
	"github.com/huntmaster/hunt-services/internal/huntsvc/evidence"
	handlers "github.com/huntmaster/hunt-services/internal/huntsvc/handlers"
	"github.com/huntmaster/hunt-services/internal/huntsvc/library"
	"github.com/huntmaster/hunt-services/internal/huntsvc/service"
	"github.com/huntmaster/hunt-services/internal/huntsvc/store"
	nats "github.com/huntmaster/hunt-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "hunt"

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME,
		"POSTGRES_URL", "MONGODB_URI", "JWT_SECRET_KEY",
		"HUNT_SERVICE_PORT", "RATE_LIMIT", "EVIDENCE_STORE_URL")
}

func main() {
	ctx := context.Background()

	// pg connection
	dbpool, err := db.ConnectPostgres(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dbpool.Close()
	log.Printf("pg connection established successfully")

	// mongo holds the externally-authored clue library
	mongoDB, closeMongo, err := db.ConnectMongo(ctx, os.Getenv("MONGODB_URI"))
	if err != nil {
		log.Fatalf("Failed to connect to Mongo: %v", err)
	}
	defer closeMongo()
	log.Printf("mongo connection established successfully")
	clueLibrary := library.New(mongoDB)

	gameStore := store.NewGameStore(dbpool)
	memberStore := store.NewMemberStore(dbpool)
	teamStore := store.NewTeamStore(dbpool)
	submissionStore := store.NewSubmissionStore(dbpool)

	guard := auth.NewGuard(memberStore)

	gameService := service.NewGameService(gameStore, memberStore, teamStore, clueLibrary, guard)
	teamService := service.NewTeamService(teamStore, gameStore, memberStore, guard)
	submissionService := service.NewSubmissionService(submissionStore, teamStore, gameStore, guard, teamService)
	victoryService := service.NewVictoryService(teamStore, gameStore, guard)
	progressService := service.NewProgressService(teamStore, gameStore, submissionStore, guard, victoryService)

	uploader := evidence.NewHTTPUploader(os.Getenv("EVIDENCE_STORE_URL"))

	// Connect to NATS
	n, err := nats.Connect(SERVICE_NAME)
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// answer progress polls from the view gateway
	b := broker.NewBroker(n.Conn, progressService)
	sub, err := b.SubscribeViewService()
	if err != nil {
		log.Errorf("Error: unable to subscribe to %s %v", comm.SubjectView, err)
		os.Exit(0)
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(gameService, teamService, submissionService, victoryService, uploader)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         config.Addr("HUNT_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	sub.Unsubscribe()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
