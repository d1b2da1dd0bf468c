package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wordup-app/apiserver/config"
	"github.com/wordup-app/apiserver/internal/db"
	"github.com/wordup-app/apiserver/internal/feedback"
	"github.com/wordup-app/apiserver/internal/handlers"
	"github.com/wordup-app/apiserver/internal/mq"
	"github.com/wordup-app/apiserver/internal/services"
	"github.com/wordup-app/apiserver/internal/storage"
	"github.com/wordup-app/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	events     *mq.MQ
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	events, err := NewEventBus(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	practiceRepo := store.NewPracticeRepository()
	userRepo := store.NewUserRepository(dbConn)
	speechRepo := store.NewSpeechRepository(dbConn)

	userService := services.NewUserService(userRepo, practiceRepo)
	speechService := services.NewSpeechService(speechRepo, eventsOrNil(events))
	practiceService := services.NewPracticeService(practiceRepo, eventsOrNil(events))

	var provider feedback.Provider
	if strings.TrimSpace(cfg.Feedback.APIKey) != "" {
		cohere, err := feedback.NewCohereClient(cfg.Feedback)
		if err != nil {
			_ = dbConn.Close()
			return nil, err
		}
		provider = cohere
	} else {
		log.Println("feedback provider not configured, /practice/feedback will fall back to local statistics")
	}

	authMiddleware := handlers.RequireAuth(cfg.JWT.Secret)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService, cfg.JWT)
	})
	router.Route("/speech", func(r chi.Router) {
		handlers.SpeechRouter(r, speechService, authMiddleware)
	})
	router.Route("/practice", func(r chi.Router) {
		handlers.PracticeRouter(r, practiceService, provider, authMiddleware)
	})
	router.Route("/admin", func(r chi.Router) {
		handlers.AdminRouter(r, userService, speechService, authMiddleware)
	})

	audioStorage, err := newRecordingStorage(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	if audioStorage != nil {
		if err := audioStorage.EnsureBucket(ctx); err != nil {
			_ = dbConn.Close()
			return nil, err
		}
		audioService := services.NewAudioService(audioStorage)
		router.Route("/api/audio", func(r chi.Router) {
			handlers.AudioRouter(r, audioService, authMiddleware)
		})
	} else {
		log.Println("object storage not configured, audio routes disabled")
	}

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		events:     events,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.events != nil {
		_ = s.events.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}

// NewEventBus connects to the configured broker. Returns nil when no
// broker is configured. Shared by the server (publish side) and the
// worker command (consume side).
func NewEventBus(ctx context.Context, cfg config.Config) (*mq.MQ, error) {
	switch cfg.MQBackend {
	case "":
		return nil, nil
	case config.MQBackendRabbitMQ:
		client, err := mq.NewRabbitMQClient(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return mq.New(client), nil
	case config.MQBackendPubSub:
		client, err := mq.NewPubSubClient(ctx, cfg.PubSub)
		if err != nil {
			return nil, err
		}
		return mq.New(client), nil
	default:
		return nil, fmt.Errorf("unknown mq backend %q", cfg.MQBackend)
	}
}

func newRecordingStorage(ctx context.Context, cfg config.Config) (*storage.Storage, error) {
	switch cfg.StorageBackend {
	case "":
		return nil, nil
	case config.StorageBackendMinio:
		client, err := storage.NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, err
		}
		return storage.NewStorage(client), nil
	case config.StorageBackendGCS:
		client, err := storage.NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		return storage.NewStorage(client), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// eventsOrNil narrows *mq.MQ to the services.EventPublisher interface,
// keeping a nil publisher nil rather than a non-nil interface holding a
// nil pointer.
func eventsOrNil(events *mq.MQ) services.EventPublisher {
	if events == nil {
		return nil
	}
	return events
}
