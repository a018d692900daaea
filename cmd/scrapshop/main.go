package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/thescrapshop/backend/internal/catalog"
	"github.com/thescrapshop/backend/internal/config"
	"github.com/thescrapshop/backend/internal/notify"
	"github.com/thescrapshop/backend/internal/payment"
	"github.com/thescrapshop/backend/internal/purchase"
)

const (
	ledgerPruneSchedule = "@every 1h"
	ledgerMaxAge        = 24 * time.Hour
)

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("JSON encoding error: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusNotFound, "Endpoint not found")
}

type Server struct {
	router          *http.ServeMux
	catalogHandler  *catalog.Handler
	purchaseHandler *purchase.Handler
	paymentHandler  *payment.Handler
}

func NewServer(catalogHandler *catalog.Handler, purchaseHandler *purchase.Handler, paymentHandler *payment.Handler) *Server {
	return &Server{
		router:          http.NewServeMux(),
		catalogHandler:  catalogHandler,
		purchaseHandler: purchaseHandler,
		paymentHandler:  paymentHandler,
	}
}

func (s *Server) RegisterRoutes() {
	router := http.NewServeMux()

	router.Handle("GET /{$}", http.HandlerFunc(s.catalogHandler.HandleIndex))
	router.Handle("GET /health", http.HandlerFunc(s.catalogHandler.HandleHealth))
	router.Handle("POST /purchase", http.HandlerFunc(s.purchaseHandler.HandleReport))
	router.Handle("POST /create-payment", http.HandlerFunc(s.paymentHandler.HandleCreatePayment))
	router.Handle("GET /execute-payment", http.HandlerFunc(s.paymentHandler.HandleExecutePayment))
	router.Handle("GET /cancel-payment", http.HandlerFunc(s.paymentHandler.HandleCancelPayment))
	router.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = router
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	if cfg.DiscordWebhookURL == "" {
		log.Println("DISCORD_WEBHOOK_URL environment variable not set!")
		log.Println("Purchase notifications will not work until this is configured.")
	} else {
		log.Println("Discord webhook configured successfully")
	}

	notifier := notify.NewService(cfg.DiscordWebhookURL)
	shopCatalog := catalog.Default()
	provider := payment.NewPayPalClient(cfg.PayPalClientID, cfg.PayPalClientSecret, cfg.PayPalMode)
	ledger := payment.NewExecutedLedger()

	purchaseService := purchase.NewService(notifier)
	paymentService := payment.NewService(provider, shopCatalog, notifier, ledger, cfg.PublicBaseURL)

	catalogHandler := catalog.NewHandler(shopCatalog, respondJSON, respondError)
	purchaseHandler := purchase.NewHandler(purchaseService, respondJSON, respondError)
	paymentHandler := payment.NewHandler(paymentService, respondJSON, respondError)

	server := NewServer(catalogHandler, purchaseHandler, paymentHandler)
	server.RegisterRoutes()

	if err := StartLedgerPruner(ledger); err != nil {
		log.Fatalf("Ledger pruner didn't start, stoping the app ...")
	}

	handler := loggingMiddleware(requestIDMiddleware(server.router))
	log.Printf("Starting The Scrap Shop on port %s...", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func StartLedgerPruner(ledger *payment.ExecutedLedger) error {
	c := cron.New()
	_, err := c.AddFunc(ledgerPruneSchedule, func() {
		removed := ledger.Prune(ledgerMaxAge)
		if removed > 0 {
			log.Printf("Pruned %d executed payment records", removed)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}
