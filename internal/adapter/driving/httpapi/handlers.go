package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/patrickmn/go-cache"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
	"github.com/diillson/fraud-dashboard-go/internal/domain/service"
	"github.com/diillson/fraud-dashboard-go/internal/logger"
	"github.com/diillson/fraud-dashboard-go/internal/shared/types"
	"github.com/diillson/fraud-dashboard-go/pkg/version"
)

// Dataset é o contexto de dados consultado pela API.
type Dataset interface {
	Current() *entity.Snapshot
	Status() entity.DatasetStatus
	Loading() bool
	StartFullLoad(ctx context.Context) <-chan error
}

// Handler agrupa os endpoints da API.
type Handler struct {
	data    Dataset
	reports *cache.Cache
}

// NewHandler cria um Handler com cache de relatórios pelo tempo informado.
func NewHandler(data Dataset, ttl time.Duration) *Handler {
	return &Handler{
		data:    data,
		reports: cache.New(ttl, 2*ttl),
	}
}

// Health handles GET /
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

// Options handles GET /api/options
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, service.Options(h.data.Current()))
}

// DatasetStatus handles GET /api/dataset
func (h *Handler) DatasetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.data.Status())
}

// LoadFull handles POST /api/dataset/full
func (h *Handler) LoadFull(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if !h.data.Loading() {
		log.Info().Msg("Starting full dataset load")
		h.data.StartFullLoad(r.Context())
	}

	writeJSON(w, r, http.StatusAccepted, map[string]interface{}{
		"status":  "loading",
		"dataset": h.data.Status(),
	})
}

// Dashboard handles GET /api/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	report, err := h.report(r)
	if err != nil {
		writeError(w, r, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

// View handles GET /api/views/{name}
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	report, err := h.report(r)
	if err != nil {
		writeError(w, r, errorStatus(err), err.Error())
		return
	}

	view, ok := report.View(name)
	if !ok {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("%s: %s", types.ErrUnknownView, name))
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

// report monta ou reaproveita o relatório do snapshot atual para o filtro da requisição.
func (h *Handler) report(r *http.Request) (*entity.DashboardReport, error) {
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		return nil, err
	}

	snap := h.data.Current()
	key := fmt.Sprintf("%d|%s", snap.Version, f.Key())
	if cached, found := h.reports.Get(key); found {
		return cached.(*entity.DashboardReport), nil
	}

	log := logger.FromContext(r.Context())
	if f.TargetCurrency != entity.BaseCurrency && !snap.Rates.HasCurrency(f.TargetCurrency) {
		log.Warn().Str("currency", f.TargetCurrency).Msg("No exchange rates for target currency")
	}

	report := service.BuildReport(snap, f, nil)
	h.reports.SetDefault(key, report)
	log.Debug().Str("cache_key", key).Int("rows", report.Summary.TotalTransactions).Msg("Report built")
	return report, nil
}

// writeJSON escreve a resposta; falhas de codificação são registradas no logger da requisição.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, map[string]string{"error": message})
}

// errorStatus mapeia parâmetros inválidos para 400; o resto é erro interno.
func errorStatus(err error) int {
	if errors.Is(err, types.ErrInvalidChoice) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
