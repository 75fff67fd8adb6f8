package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"linkswap/internal/core/domain"
	"linkswap/internal/core/port"
	"linkswap/internal/observability/metrics"
)

// TokenParser turns a bearer token into a verified caller.
type TokenParser interface {
	Parse(token string) (domain.Caller, error)
}

// Services bundles the inbound ports served over HTTP.
type Services struct {
	Campaigns port.CampaignUseCase
	Slots     port.SlotUseCase
	Ledger    port.LedgerUseCase
	Directory port.DirectoryUseCase
}

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds the use cases that execute business logic, the token parser that
// authenticates callers and a logger for structured logging. Routes are
// registered on a chi.Router for convenient method handling.
type Handler struct {
	svc    Services
	tokens TokenParser
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. Everything under
// /api/v1 requires a bearer token; /healthz and /metrics do not.
func NewHandler(svc Services, tokens TokenParser, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, tokens: tokens, logger: logger}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, metrics.Middleware)

	r.Get("/healthz", h.handleHealth)
	if metrics.Enabled() {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.authenticate)

		r.Post("/campaigns", h.handleCreateCampaign)
		r.Route("/campaigns/{id}", func(r chi.Router) {
			r.Get("/", h.handleGetCampaign)
			r.Get("/slots", h.handleCampaignSlots)
			r.Get("/fulfillment", h.handleFulfillment)
			r.Post("/pause", h.handlePauseCampaign)
			r.Post("/resume", h.handleResumeCampaign)
			r.Post("/cancel", h.handleCancelCampaign)
		})

		r.Route("/slots/{id}", func(r chi.Router) {
			r.Get("/", h.handleGetSlot)
			r.Delete("/", h.handleCancelSlot)
			r.Post("/claim", h.handleClaim)
			r.Post("/proof", h.handleSubmitProof)
			r.Post("/retry", h.handleRetryProof)
			r.Post("/release", h.handleRelease)
		})

		r.Get("/me/balance", h.handleMyBalance)
		r.Get("/me/transactions", h.handleMyTransactions)
		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/balance", h.handleBalance)
			r.Get("/transactions", h.handleTransactions)
			r.Get("/reconcile", h.handleReconcile)
		})

		r.Post("/verify", h.handleVerify)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/slots/{id}/approve", h.handleApprove)
			r.Post("/slots/{id}/reject", h.handleReject)
			r.Post("/users/{id}/credits/add", h.handleCreditsAdd)
			r.Post("/users/{id}/credits/remove", h.handleCreditsRemove)
			r.Put("/users/{id}", h.handleSyncUser)
			r.Put("/assets/{id}", h.handleSyncAsset)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}
