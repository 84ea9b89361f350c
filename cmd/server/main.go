package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/linkagehub/marketplace-api/internal/common"
	completionhandler "github.com/linkagehub/marketplace-api/internal/http/v1/completion"
	"github.com/linkagehub/marketplace-api/internal/http/v1/routes"
	appmiddleware "github.com/linkagehub/marketplace-api/internal/middleware"
	"github.com/linkagehub/marketplace-api/internal/platform/auth"
	"github.com/linkagehub/marketplace-api/internal/platform/firebase"
	"github.com/linkagehub/marketplace-api/internal/respond"
	"github.com/linkagehub/marketplace-api/internal/service/analytics"
	businesssvc "github.com/linkagehub/marketplace-api/internal/service/business"
	profilesvc "github.com/linkagehub/marketplace-api/internal/service/profile"
	savedsvc "github.com/linkagehub/marketplace-api/internal/service/saved"
	vasvc "github.com/linkagehub/marketplace-api/internal/service/va"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	defer func() {
		if err := common.Sync(); err != nil {
			appmiddleware.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := common.Err(); err != nil {
		appmiddleware.LogError(context.Background(), "logger init error", err)
	}

	cfg := loadConfig()
	if cfg.FirebaseProjectID == "" {
		appmiddleware.LogFatal(context.Background(), "FIREBASE_PROJECT_ID is required", nil)
	}

	ctx := context.Background()
	clients, err := firebase.InitializeClients(ctx, firebase.Config{
		ProjectID:                    cfg.FirebaseProjectID,
		GoogleApplicationCredentials: cfg.FirebaseCredentials,
	})
	if err != nil {
		appmiddleware.LogFatal(ctx, "firebase initialization failed", err)
	}
	defer func() {
		if err := clients.Close(); err != nil {
			appmiddleware.LogError(context.Background(), "firestore close error", err)
		}
	}()

	respond.Install()

	// Services
	profiles := profilesvc.NewFirestoreStore(clients.Firestore)
	businesses := businesssvc.NewFirestoreStore(clients.Firestore)
	vas := vasvc.NewFirestoreStore(clients.Firestore)
	savedStore := savedsvc.NewFirestoreStore(clients.Firestore)

	var tracker analytics.Tracker = analytics.Noop{}
	if cfg.AnalyticsURL != "" {
		tracker = analytics.NewClient(
			&http.Client{Timeout: 5 * time.Second},
			cfg.AnalyticsURL,
			analytics.WithToken(cfg.AnalyticsToken),
		)
	}

	saved := savedsvc.NewService(savedStore, vas, businesses, tracker, savedsvc.Config{
		MaxSaved: cfg.MaxSavedVAs,
		Brand:    cfg.Brand,
		Gate:     savedsvc.ESystemsGate(cfg.Brand, cfg.ESystemsMode),
	})
	checker := completionhandler.NewChecker(profiles, nil, cfg.CompletionThreshold)

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security("/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		// Without a trusted proxy, clients can spoof their IP address.
		chimiddleware.RealIP,
		// RequestSize limits request body size to prevent memory exhaustion from large payloads.
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		appmiddleware.RequestLogger(),
		appmiddleware.AccessLogger(),
		respond.Recoverer(),
	)

	humaCfg := huma.DefaultConfig("Linkage Marketplace API", Version)
	humaCfg.DocsPath = "/api-docs"
	api := humachi.New(router, humaCfg)

	// Add CBOR content type to OpenAPI requests and responses
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)

	routes.Register(api, routes.Deps{
		Verifier: auth.NewFirebaseVerifier(clients.Auth),
		Checker:  checker,
		Saved:    saved,
		Version:  Version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		appmiddleware.LogInfo(context.Background(), "server listening",
			zap.String("addr", srv.Addr), zap.String("brand", cfg.Brand))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		appmiddleware.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		appmiddleware.LogInfo(context.Background(), "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appmiddleware.LogError(shutdownCtx, "server shutdown error", err)
	}
	appmiddleware.LogInfo(context.Background(), "server exited")
}
