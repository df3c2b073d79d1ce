package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/enrich"
	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/store"
	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/upstream"
	"github.com/radieske/sports-feed-aggregator-poc/pkg/contracts/events"
)

// feedStub simula o client upstream nos testes do handler
type feedStub struct {
	events []events.Event
	err    error
}

func (f *feedStub) FetchEvents(_ context.Context, _, _ string) ([]events.Event, error) {
	return f.events, f.err
}

func newTestAPI(feed enrich.FeedClient) *API {
	mem := store.NewMemory(16)
	return &API{
		Log:          zap.NewNop(),
		Orch:         enrich.New(zap.NewNop(), feed, mem, enrich.DefaultTTLs()),
		Store:        mem,
		TTLReference: 24 * time.Hour,
	}
}

func TestListSports(t *testing.T) {
	api := newTestAPI(&feedStub{})

	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sports", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Sports []string `json:"sports"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Sports) != 2 {
		t.Errorf("sports = %v, want two entries", body.Sports)
	}
}

func TestListEventsLive(t *testing.T) {
	api := newTestAPI(&feedStub{events: []events.Event{
		{
			EventID:   "football-w10-kc-buf",
			Sport:     "football",
			StartTime: time.Date(2025, time.November, 9, 18, 0, 0, 0, time.UTC),
			Status:    events.StatusLive,
			Period:    3,
			Clock:     "11:02",
			Home:      events.TeamSide{Name: "Kansas City Chiefs", Record: "8-1", Score: 21},
			Away:      events.TeamSide{Name: "Buffalo Bills", Record: "7-2", Score: 17},
		},
	}})

	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sports/football/events?date=2025-11-09", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var snap events.EnrichmentSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.DataSource != events.SourceLive {
		t.Errorf("dataSource = %q, want live", snap.DataSource)
	}
	if snap.DateContext != "2025-11-09" {
		t.Errorf("dateContext = %q", snap.DateContext)
	}
	if len(snap.Events) != 1 || snap.Events[0].Prediction == nil || snap.Events[0].BettingLines == nil {
		t.Errorf("events not enriched: %+v", snap.Events)
	}
}

func TestListEventsDegradedStill200(t *testing.T) {
	// Upstream fora do ar: a resposta continua 200, com origem sintética
	api := newTestAPI(&feedStub{err: upstream.ErrTimeout})

	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sports/football/events?date=2025-11-09", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, degraded responses must stay 200", rec.Code)
	}

	var snap events.EnrichmentSnapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.DataSource != events.SourceSynthetic {
		t.Errorf("dataSource = %q, want synthetic", snap.DataSource)
	}
	if len(snap.Events) == 0 {
		t.Error("degraded response should still carry events")
	}
}

func TestListEventsUnknownSport(t *testing.T) {
	api := newTestAPI(&feedStub{})

	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sports/curling/events", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestListTeamsCached(t *testing.T) {
	api := newTestAPI(&feedStub{})

	var hits int
	api.Store.(*store.Memory).OnHit = func() { hits++ }

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		api.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sports/basketball/teams", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}

		var body struct {
			Sport string `json:"sport"`
			Teams []struct {
				Name string `json:"name"`
				Tier int    `json:"tier"`
			} `json:"teams"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Sport != "basketball" || len(body.Teams) != 16 {
			t.Errorf("body = %+v", body)
		}
	}

	// Segunda chamada responde do cache de referência
	if hits != 1 {
		t.Errorf("cache hits = %d, want 1", hits)
	}

	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sports/curling/teams", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown sport status = %d, want 404", rec.Code)
	}
}
