package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/enrich"
	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/sport"
	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/store"
)

// API expõe os endpoints REST de agregação de eventos esportivos
// Resposta degradada usa o mesmo schema e status 200; a origem vai no
// campo dataSource do payload
type API struct {
	Log   *zap.Logger
	Orch  *enrich.Orchestrator
	Store store.Store // cache de metadados de referência (times)

	TTLReference time.Duration
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/sports", a.listSports)                // Esportes suportados
	r.Get("/v1/sports/{sport}/events", a.listEvents) // Eventos enriquecidos do dia
	r.Get("/v1/sports/{sport}/teams", a.listTeams)   // Metadados de times
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *API) listSports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"sports": sport.Keys()})
}

// listEvents devolve o snapshot enriquecido do esporte/data
// Sempre 200 com dataSource no corpo, mesmo quando a origem é sintética
func (a *API) listEvents(w http.ResponseWriter, r *http.Request) {
	sportKey := chi.URLParam(r, "sport")

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	snap, err := a.Orch.Enrich(r.Context(), sportKey, date)
	if err != nil {
		if errors.Is(err, enrich.ErrUnknownSport) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown sport: " + sportKey})
			return
		}
		a.Log.Error("enrich failed", zap.String("sport", sportKey), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// listTeams devolve o pool de times do esporte, cacheado com TTL longo
func (a *API) listTeams(w http.ResponseWriter, r *http.Request) {
	sportKey := chi.URLParam(r, "sport")

	prof, ok := sport.Lookup(sportKey)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown sport: " + sportKey})
		return
	}

	key := "teams:" + sportKey

	var teams []sport.Team
	if hit, _ := a.Store.Get(r.Context(), key, &teams); hit {
		writeJSON(w, http.StatusOK, map[string]any{"sport": sportKey, "teams": teams})
		return
	}

	teams = prof.Teams
	_ = a.Store.Set(r.Context(), key, teams, a.TTLReference)
	writeJSON(w, http.StatusOK, map[string]any{"sport": sportKey, "teams": teams})
}
