package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth"
	natsio "github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	config "github.com/huntmaster/hunt-services/configs"
	"github.com/huntmaster/hunt-services/internal/comm"
	nats "github.com/huntmaster/hunt-services/internal/nats"
)

// viewsvc is the polling gateway. Clients poll it every few tens of seconds
// for team progression; it forwards each poll to huntsvc over NATS
// request/reply and relays the answer. It holds no state of its own.

const SERVICE_NAME = "view"

func init() {
	instanceId := config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME, "JWT_SECRET_KEY", "VIEW_SERVICE_PORT", "RATE_LIMIT")
}

type gateway struct {
	conn      *natsio.Conn
	tokenAuth *jwtauth.JWTAuth
}

func (g *gateway) progressHandler(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		writeReply(w, comm.Reply{Code: http.StatusUnauthorized, Error: err.Error()})
		return
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		writeReply(w, comm.Reply{Code: http.StatusUnauthorized, Error: "missing user_id claim"})
		return
	}

	reqData, err := json.Marshal(comm.ProgressRequest{
		TeamID: chi.URLParam(r, "teamID"),
		UserID: userID,
	})
	if err != nil {
		writeReply(w, comm.Reply{Code: http.StatusInternalServerError, Error: "encode failed"})
		return
	}
	msgData, err := json.Marshal(comm.Message{Type: comm.TypeProgress, Data: reqData})
	if err != nil {
		writeReply(w, comm.Reply{Code: http.StatusInternalServerError, Error: "encode failed"})
		return
	}

	resp, err := g.conn.RequestWithContext(r.Context(), comm.SubjectView, msgData)
	if err != nil {
		if errors.Is(err, natsio.ErrNoResponders) {
			writeReply(w, comm.Reply{Code: http.StatusServiceUnavailable, Error: "hunt service unavailable"})
			return
		}
		log.Errorf("Error requesting progress: %v", err)
		writeReply(w, comm.Reply{Code: http.StatusBadGateway, Error: "hunt service did not answer"})
		return
	}

	var reply comm.Reply
	if err := json.Unmarshal(resp.Data, &reply); err != nil {
		writeReply(w, comm.Reply{Code: http.StatusBadGateway, Error: "bad reply from hunt service"})
		return
	}
	writeReply(w, reply)
}

func writeReply(w http.ResponseWriter, reply comm.Reply) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.Code)
	json.NewEncoder(w).Encode(reply)
}

func (g *gateway) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeReply(w, comm.Reply{Code: http.StatusOK})
}

func main() {
	// Connect to NATS
	n, err := nats.Connect(SERVICE_NAME)
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	g := &gateway{
		conn:      n.Conn,
		tokenAuth: jwtauth.New("HS256", []byte(os.Getenv("JWT_SECRET_KEY")), nil),
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", g.healthHandler)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(g.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/teams/{teamID}/progress", g.progressHandler)
		})
	})

	// Create server with timeout settings
	server := &http.Server{
		Addr:         config.Addr("VIEW_SERVICE_PORT"),
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

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
