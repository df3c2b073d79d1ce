package enrich

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/scoring"
	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/store"
	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/upstream"
	"github.com/radieske/sports-feed-aggregator-poc/pkg/contracts/events"
)

// fakeFeed devolve a resposta programada e conta as chamadas
type fakeFeed struct {
	events []events.Event
	err    error
	calls  int
}

func (f *fakeFeed) FetchEvents(_ context.Context, _, _ string) ([]events.Event, error) {
	f.calls++
	return f.events, f.err
}

func liveEvents() []events.Event {
	return []events.Event{
		{
			EventID:   "football-w10-kc-buf",
			Sport:     "football",
			StartTime: time.Date(2025, time.November, 9, 18, 0, 0, 0, time.UTC),
			Venue:     "Arrowhead Stadium",
			Status:    events.StatusLive,
			Period:    2,
			Clock:     "7:41",
			Home:      events.TeamSide{Name: "Kansas City Chiefs", Abbreviation: "KC", Record: "8-1", Score: 14},
			Away:      events.TeamSide{Name: "Buffalo Bills", Abbreviation: "BUF", Record: "7-2", Score: 10},
		},
		{
			EventID:   "football-w10-det-chi",
			Sport:     "football",
			StartTime: time.Date(2025, time.November, 9, 21, 0, 0, 0, time.UTC),
			Venue:     "Ford Field",
			Status:    events.StatusScheduled,
			Home:      events.TeamSide{Name: "Detroit Lions", Abbreviation: "DET", Record: "9-1"},
			Away:      events.TeamSide{Name: "Chicago Bears", Abbreviation: "CHI", Record: "4-6"},
		},
	}
}

func newTestOrchestrator(feed FeedClient) (*Orchestrator, *store.Memory) {
	mem := store.NewMemory(16)
	o := New(zap.NewNop(), feed, mem, DefaultTTLs())
	o.now = func() time.Time { return time.Date(2025, time.November, 9, 19, 0, 0, 0, time.UTC) }
	return o, mem
}

func TestEnrichUsesUpstreamAndWritesBack(t *testing.T) {
	feed := &fakeFeed{events: liveEvents()}
	o, mem := newTestOrchestrator(feed)

	snap, err := o.Enrich(context.Background(), "football", "2025-11-09")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}

	if snap.DataSource != events.SourceLive {
		t.Errorf("dataSource = %q, want live", snap.DataSource)
	}
	if len(snap.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(snap.Events))
	}
	for _, ev := range snap.Events {
		if ev.Prediction == nil || ev.BettingLines == nil {
			t.Errorf("%s: missing enrichment", ev.EventID)
		}
	}

	// Resposta fresca volta pro cache
	var cached []events.Event
	hit, _ := mem.Get(context.Background(), "events:football:2025-11-09", &cached)
	if !hit || len(cached) != 2 {
		t.Errorf("write-back missing: hit=%v len=%d", hit, len(cached))
	}
}

func TestEnrichFallsBackToCache(t *testing.T) {
	feed := &fakeFeed{err: &upstream.HTTPError{Status: 502}}
	o, mem := newTestOrchestrator(feed)

	// Semeia o cache com eventos de uma resposta anterior
	seeded := liveEvents()
	if err := mem.Set(context.Background(), "events:football:2025-11-09", seeded, time.Minute); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	var kinds []string
	o.OnUpstreamError = func(kind string) { kinds = append(kinds, kind) }

	snap, err := o.Enrich(context.Background(), "football", "2025-11-09")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}

	if snap.DataSource != events.SourceCache {
		t.Errorf("dataSource = %q, want cache", snap.DataSource)
	}
	if len(snap.Events) != len(seeded) {
		t.Fatalf("got %d events, want %d cached", len(snap.Events), len(seeded))
	}
	for i, ev := range snap.Events {
		// Campos brutos idênticos ao que estava no cache
		if !reflect.DeepEqual(ev.Event, seeded[i]) {
			t.Errorf("event %d raw fields diverge from cache:\n got %+v\nwant %+v", i, ev.Event, seeded[i])
		}
		if ev.Prediction == nil || ev.BettingLines == nil {
			t.Errorf("%s: cached events must be enriched too", ev.EventID)
		}
	}
	if !reflect.DeepEqual(kinds, []string{"http"}) {
		t.Errorf("upstream error kinds = %v, want [http]", kinds)
	}
}

func TestEnrichFallsBackToSynthetic(t *testing.T) {
	feed := &fakeFeed{err: upstream.ErrTimeout}
	o, _ := newTestOrchestrator(feed)

	var sources []string
	o.OnSource = func(s string) { sources = append(sources, s) }

	snap, err := o.Enrich(context.Background(), "football", "2025-11-09")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}

	if snap.DataSource != events.SourceSynthetic {
		t.Errorf("dataSource = %q, want synthetic", snap.DataSource)
	}
	if len(snap.Events) == 0 {
		t.Fatal("synthetic fallback returned no events")
	}
	for _, ev := range snap.Events {
		if ev.Prediction == nil || ev.BettingLines == nil {
			t.Errorf("%s: synthetic events must be enriched too", ev.EventID)
		}
	}
	if !reflect.DeepEqual(sources, []string{events.SourceSynthetic}) {
		t.Errorf("sources = %v", sources)
	}
}

func TestEnrichEmptyUpstreamTreatedAsMiss(t *testing.T) {
	// Resposta vazia sem erro não é dado utilizável: cai pra cascata
	feed := &fakeFeed{events: nil, err: nil}
	o, _ := newTestOrchestrator(feed)

	snap, err := o.Enrich(context.Background(), "football", "2025-11-09")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if snap.DataSource != events.SourceSynthetic {
		t.Errorf("dataSource = %q, want synthetic for empty upstream", snap.DataSource)
	}
}

func TestEnrichUnknownSport(t *testing.T) {
	o, _ := newTestOrchestrator(&fakeFeed{})

	_, err := o.Enrich(context.Background(), "curling", "2025-11-09")
	if !errors.Is(err, ErrUnknownSport) {
		t.Fatalf("err = %v, want ErrUnknownSport", err)
	}
}

func TestEnrichIdempotentWithinTTLWindow(t *testing.T) {
	feed := &fakeFeed{events: liveEvents()}
	o, _ := newTestOrchestrator(feed)

	base := time.Date(2025, time.November, 9, 19, 0, 0, 0, time.UTC)
	o.now = func() time.Time { return base }
	a, _ := o.Enrich(context.Background(), "football", "2025-11-09")

	// Alguns segundos depois, ainda na mesma janela de TTL live (30s)
	o.now = func() time.Time { return base.Add(3 * time.Second) }
	b, _ := o.Enrich(context.Background(), "football", "2025-11-09")

	for i := range a.Events {
		if !reflect.DeepEqual(a.Events[i].Prediction, b.Events[i].Prediction) {
			t.Errorf("%s: prediction changed within the TTL window", a.Events[i].EventID)
		}
		if !reflect.DeepEqual(a.Events[i].BettingLines, b.Events[i].BettingLines) {
			t.Errorf("%s: lines changed within the TTL window", a.Events[i].EventID)
		}
	}
}

func TestEnrichPerEventFailureKeepsBatch(t *testing.T) {
	feed := &fakeFeed{events: liveEvents()}
	o, _ := newTestOrchestrator(feed)

	var failures int
	o.OnEnrichFailure = func() { failures++ }

	// Derruba o enriquecimento de um único evento do lote
	o.enrichFn = func(eng *scoring.Engine, ev events.Event, seed int64) (events.Prediction, events.BettingLines, error) {
		if ev.EventID == "football-w10-det-chi" {
			return events.Prediction{}, events.BettingLines{}, errors.New("bad input")
		}
		return defaultEnrich(eng, ev, seed)
	}

	snap, err := o.Enrich(context.Background(), "football", "2025-11-09")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}

	if len(snap.Events) != 2 {
		t.Fatalf("got %d events, want the whole batch", len(snap.Events))
	}
	// Ordem preservada; só o evento afetado perde os campos de enriquecimento
	if snap.Events[0].EventID != "football-w10-kc-buf" || snap.Events[0].Prediction == nil {
		t.Errorf("healthy event degraded: %+v", snap.Events[0])
	}
	if snap.Events[1].EventID != "football-w10-det-chi" {
		t.Errorf("order not preserved: %s", snap.Events[1].EventID)
	}
	if snap.Events[1].Prediction != nil || snap.Events[1].BettingLines != nil {
		t.Error("failed event should carry raw fields only")
	}
	if failures != 1 {
		t.Errorf("failures = %d, want 1", failures)
	}
}

func TestEnrichPanicInOneEventIsContained(t *testing.T) {
	feed := &fakeFeed{events: liveEvents()}
	o, _ := newTestOrchestrator(feed)

	o.enrichFn = func(eng *scoring.Engine, ev events.Event, seed int64) (events.Prediction, events.BettingLines, error) {
		if ev.EventID == "football-w10-kc-buf" {
			panic("corrupted upstream data")
		}
		return defaultEnrich(eng, ev, seed)
	}

	snap, err := o.Enrich(context.Background(), "football", "2025-11-09")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if snap.Events[0].Prediction != nil {
		t.Error("panicked event should come back raw")
	}
	if snap.Events[1].Prediction == nil {
		t.Error("panic in one event degraded the rest of the batch")
	}
}

func TestEnrichNotifiesPublisherAndBroadcaster(t *testing.T) {
	feed := &fakeFeed{events: liveEvents()}
	o, _ := newTestOrchestrator(feed)

	var published, broadcast []string
	o.Publisher = func(_ context.Context, snap events.EnrichmentSnapshot) {
		published = append(published, snap.Sport+":"+snap.DateContext)
	}
	o.Broadcaster = func(snap events.EnrichmentSnapshot) {
		broadcast = append(broadcast, snap.DataSource)
	}

	if _, err := o.Enrich(context.Background(), "football", "2025-11-09"); err != nil {
		t.Fatalf("Enrich: %v", err)
	}

	if !reflect.DeepEqual(published, []string{"football:2025-11-09"}) {
		t.Errorf("published = %v", published)
	}
	if !reflect.DeepEqual(broadcast, []string{events.SourceLive}) {
		t.Errorf("broadcast = %v", broadcast)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{upstream.ErrTimeout, "timeout"},
		{context.DeadlineExceeded, "timeout"},
		{&upstream.HTTPError{Status: 429}, "http"},
		{&upstream.MalformedError{Reason: "bad json"}, "malformed"},
		{errors.New("connection refused"), "other"},
	}

	for _, tt := range tests {
		if got := classify(tt.err); got != tt.want {
			t.Errorf("classify(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
