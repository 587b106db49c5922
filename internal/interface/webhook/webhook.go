package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"planewatch-service/internal/domain/entity"
	"planewatch-service/internal/infrastructure/router"
	"planewatch-service/pkg/logger"
	"planewatch-service/pkg/metrics"
	"planewatch-service/pkg/tasks"
)

// Upper bound for one background pipeline run, provider calls included.
const unitTimeout = 2 * time.Minute

// ResponseMessage is the fixed two-field acknowledgement. Errors are signaled
// through ok=false, never through HTTP status codes, so the chat provider's
// webhook retries do not amplify transient failures.
type ResponseMessage struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Handler serves the inbound Telegram webhook. Decoding happens here, once:
// the raw payload becomes a tagged InboundEvent before any business code
// sees it, and the pipeline runs as a supervised background unit so the
// webhook response never waits on provider calls.
type Handler struct {
	router  *router.UpdateRouter
	group   *tasks.Group
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewHandler creates a new webhook handler
func NewHandler(router *router.UpdateRouter, group *tasks.Group, logger logger.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		router:  router,
		group:   group,
		logger:  logger,
		metrics: metrics,
	}
}

// Register mounts the webhook routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/planeBot", h.handleRoot)
	mux.HandleFunc("/planeBot/health", h.handleRoot)
	mux.HandleFunc("/webhooks/telegram/webhook", h.handleWebhook)
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.reply(w, true, "Success")
}

func (h *Handler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.reply(w, true, "Success")
		return
	}

	h.metrics.UpdatesReceived.Inc()

	var update entity.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.Error("Failed to parse update", "error", err)
		h.reply(w, false, "Failed to parse updates.")
		return
	}

	event, ok := update.Event()
	if !ok {
		h.logger.Debug("Update carries no message", "updateId", update.UpdateID)
		h.reply(w, false, "No updates received.")
		return
	}

	handler := h.router.GetHandler(event)
	if handler == nil {
		h.logger.Debug("No handler for event", "kind", event.Kind)
		h.reply(w, false, "Unsupported update.")
		return
	}

	h.group.Go("information_retrieval", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), unitTimeout)
		defer cancel()
		return handler.Process(ctx, event)
	})

	h.reply(w, true, "Success")
}

func (h *Handler) reply(w http.ResponseWriter, ok bool, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ResponseMessage{OK: ok, Description: description})
}
