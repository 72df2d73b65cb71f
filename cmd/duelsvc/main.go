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
	log "github.com/sirupsen/logrus"

	config "github.com/hakarigames/duel-services/configs"
	"github.com/hakarigames/duel-services/internal/db"
	"github.com/hakarigames/duel-services/internal/duelsvc/broker"
	duelconfig "github.com/hakarigames/duel-services/internal/duelsvc/config"
	pgdb "github.com/hakarigames/duel-services/internal/duelsvc/db"
	"github.com/hakarigames/duel-services/internal/duelsvc/engine"
	handlers "github.com/hakarigames/duel-services/internal/duelsvc/handlers"
	"github.com/hakarigames/duel-services/internal/duelsvc/service"
	"github.com/hakarigames/duel-services/internal/duelsvc/store"
	nats "github.com/hakarigames/duel-services/internal/nats"
)

const SERVICE_NAME = "duel"

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {

	cfg := duelconfig.Load()

	// mongo holds match states and matchmaking rooms
	mongoDB, cancelMongo, err := db.ConnectToDB(cfg.MongoURL)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer cancelMongo()
	log.Printf("mongo connection established successfully")

	db.CreateUniqueIndexForCollection(mongoDB, "match_states", "match_id")
	db.CreateUniqueIndexForCollection(mongoDB, "rooms", "room_code")
	db.CreateTTLIndexForCollection(mongoDB, "rooms")

	// pg holds user credentials
	dbpool, err := pgdb.Connect(cfg.PostgresURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgdb.ClosePool()
	log.Printf("pg connection established successfully")

	matchStore := store.NewMatchStore(mongoDB)
	roomStore := store.NewRoomStore(mongoDB)
	userStore := store.NewUserStore(dbpool)

	rules := engine.Default()
	matchService := service.NewMatchService(matchStore, roomStore, rules)
	roomService := service.NewRoomService(roomStore)
	userService := service.NewUserService(userStore)

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// push match updates to the socket service
	b := broker.NewBroker(n.Conn)

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
	h := handlers.NewHandler(matchService, roomService, userService, b)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("DUEL_SERVICE_PORT"),
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
