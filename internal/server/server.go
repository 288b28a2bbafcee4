// Package server exposes the deal evaluation and rule administration API
// over HTTP. The core packages stay lock-free pure functions; the single
// mutex here exists only because HTTP introduces concurrent requests the
// original single-user form surface did not have.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dealdesk/dealpilot/internal/admin"
	"github.com/dealdesk/dealpilot/internal/deal"
	"github.com/dealdesk/dealpilot/internal/lender"
	"github.com/dealdesk/dealpilot/internal/rulestore"
	"github.com/dealdesk/dealpilot/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger  *zap.Logger
	version string

	mu      sync.Mutex
	rules   *lender.RuleSet
	store   *rulestore.Store
	session *admin.Session
}

// NewHandler constructs the HTTP handler serving the evaluation and admin API.
func NewHandler(logger *zap.Logger, rules *lender.RuleSet, store *rulestore.Store,
	session *admin.Session, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rules == nil {
		rules = lender.DefaultRuleSet()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:  logger,
		version: trimmedVersion,
		rules:   rules,
		store:   store,
		session: session,
	}

	mux := http.NewServeMux()

	// Deal evaluation endpoint
	mux.HandleFunc("/api/evaluate", h.handleEvaluate)

	// Rule set read endpoints
	mux.HandleFunc("/api/lenders", h.handleLenders)
	mux.HandleFunc("/api/lenders/checklist", h.handleChecklist)

	// Admin gate and gated mutations
	mux.HandleFunc("/api/admin/login", h.handleLogin)
	mux.HandleFunc("/api/admin/lenders", h.handleAdminLenders)
	mux.HandleFunc("/api/admin/lenders/default", h.handleAddDefault)
	mux.HandleFunc("/api/admin/save", h.handleSave)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type evaluateResponse struct {
	Metrics  deal.Metrics   `json:"metrics"`
	Matches  []string       `json:"matches"`
	Alerts   []lender.Alert `json:"alerts"`
	Warnings []string       `json:"warnings,omitempty"`
	Duration string         `json:"duration"`
}

func (h *handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var input deal.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("failed to decode deal input: %v", err), "server.handleEvaluate")
		return
	}

	warnings := validation.CheckDealInput(input)
	metrics := deal.ComputeMetrics(input)

	h.mu.Lock()
	matches := lender.MatchLenders(metrics, h.rules)
	alerts := lender.ComputeAlerts(metrics, h.rules, input.Scores, input.BaseValue)
	h.mu.Unlock()

	elapsed := time.Since(start)
	h.logger.Info("deal evaluated",
		zap.String("op", "server.handleEvaluate"),
		zap.Int("matches", len(matches)),
		zap.Int("alerts", len(alerts)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, evaluateResponse{
		Metrics:  metrics,
		Matches:  matches,
		Alerts:   alerts,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleLenders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.mu.Lock()
	entries := h.rules.Entries()
	h.mu.Unlock()

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"lenders": entries})
}

func (h *handler) handleChecklist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		h.respondError(w, http.StatusBadRequest, "missing lender name", "server.handleChecklist")
		return
	}

	h.mu.Lock()
	docs, err := h.rules.Checklist(name)
	h.mu.Unlock()
	if err != nil {
		if errors.Is(err, lender.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error(), "server.handleChecklist")
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error(), "server.handleChecklist")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"lender":    name,
		"documents": docs,
	})
}

func (h *handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		Passcode string `json:"passcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("failed to decode login request: %v", err), "server.handleLogin")
		return
	}

	h.mu.Lock()
	ok := h.session != nil && h.session.Unlock(payload.Passcode)
	h.mu.Unlock()

	if !ok {
		h.logger.Warn("admin login rejected",
			zap.String("op", "server.handleLogin"),
		)
		h.respondError(w, http.StatusUnauthorized, "invalid pass-code", "server.handleLogin")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]bool{"authenticated": true})
}

// requireAdmin rejects the request when the session gate is still locked.
func (h *handler) requireAdmin(w http.ResponseWriter, op string) bool {
	h.mu.Lock()
	unlocked := h.session != nil && h.session.Unlocked()
	h.mu.Unlock()

	if !unlocked {
		h.respondError(w, http.StatusUnauthorized, "admin session is locked", op)
		return false
	}
	return true
}

type upsertRequest struct {
	Name string `json:"name"`
	lender.Rule
}

func (h *handler) handleAdminLenders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPut:
		h.handleUpsert(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, "server.handleUpsert") {
		return
	}

	var payload upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("failed to decode rule: %v", err), "server.handleUpsert")
		return
	}
	if strings.TrimSpace(payload.Name) == "" {
		h.respondError(w, http.StatusBadRequest, "missing lender name", "server.handleUpsert")
		return
	}
	if err := payload.Rule.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleUpsert")
		return
	}

	h.mu.Lock()
	h.rules.Upsert(payload.Name, payload.Rule)
	h.mu.Unlock()

	h.logger.Info("lender rule upserted",
		zap.String("op", "server.handleUpsert"),
		zap.String("lender", payload.Name),
	)
	h.writeJSON(w, http.StatusOK, map[string]string{"lender": payload.Name})
}

func (h *handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, "server.handleDelete") {
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		h.respondError(w, http.StatusBadRequest, "missing lender name", "server.handleDelete")
		return
	}

	h.mu.Lock()
	err := h.rules.Delete(name)
	h.mu.Unlock()
	if err != nil {
		if errors.Is(err, lender.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, err.Error(), "server.handleDelete")
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error(), "server.handleDelete")
		return
	}

	h.logger.Info("lender rule deleted",
		zap.String("op", "server.handleDelete"),
		zap.String("lender", name),
	)
	h.writeJSON(w, http.StatusOK, map[string]string{"lender": name})
}

func (h *handler) handleAddDefault(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if !h.requireAdmin(w, "server.handleAddDefault") {
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		h.respondError(w, http.StatusBadRequest, "missing lender name", "server.handleAddDefault")
		return
	}

	h.mu.Lock()
	h.rules.AddDefault(name)
	h.mu.Unlock()

	h.writeJSON(w, http.StatusOK, map[string]string{"lender": name})
}

func (h *handler) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if !h.requireAdmin(w, "server.handleSave") {
		return
	}
	if h.store == nil {
		h.respondError(w, http.StatusInternalServerError, "no rule store configured", "server.handleSave")
		return
	}

	h.mu.Lock()
	err := h.store.Save(h.rules)
	lenders := h.rules.Len()
	h.mu.Unlock()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to save rules: %v", err), "server.handleSave")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"saved":   true,
		"lenders": lenders,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
