package enrich

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/lines"
	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/scoring"
	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/sport"
	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/store"
	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/synth"
	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/upstream"
	"github.com/radieske/sports-feed-aggregator-poc/pkg/contracts/events"
)

// ErrUnknownSport é o único erro que o orquestrador devolve ao chamador
var ErrUnknownSport = errors.New("unknown sport")

// FeedClient é o contrato do client upstream visto pelo orquestrador
type FeedClient interface {
	FetchEvents(ctx context.Context, sportKey, date string) ([]events.Event, error)
}

// TTLSet agrupa os TTLs por tipo de dado
type TTLSet struct {
	Live      time.Duration // dados de jogo em andamento
	Upcoming  time.Duration // jogos futuros
	Reference time.Duration // metadados quase estáticos (times)
}

func DefaultTTLs() TTLSet {
	return TTLSet{
		Live:      30 * time.Second,
		Upcoming:  5 * time.Minute,
		Reference: 24 * time.Hour,
	}
}

// Orchestrator resolve a origem dos eventos brutos na ordem estrita
// upstream -> cache -> sintético e aplica o enriquecimento uniformemente
// sobre o conjunto resultante, independente da origem
type Orchestrator struct {
	Log     *zap.Logger
	Feed    FeedClient
	Store   store.Store
	TTL     TTLSet
	Workers int // limite do pool de enriquecimento por chamada

	// Efeitos best-effort após a montagem do snapshot (ambos opcionais)
	Publisher   func(ctx context.Context, snap events.EnrichmentSnapshot)
	Broadcaster func(snap events.EnrichmentSnapshot)

	// Callbacks de métricas
	OnSource        func(source string) // live | cache | synthetic
	OnUpstreamError func(kind string)   // timeout | http | malformed | other
	OnEnrichFailure func()

	now      func() time.Time
	enrichFn func(eng *scoring.Engine, ev events.Event, seed int64) (events.Prediction, events.BettingLines, error)
}

func New(log *zap.Logger, feed FeedClient, st store.Store, ttl TTLSet) *Orchestrator {
	return &Orchestrator{
		Log:      log,
		Feed:     feed,
		Store:    st,
		TTL:      ttl,
		Workers:  4,
		now:      time.Now,
		enrichFn: defaultEnrich,
	}
}

// Enrich monta o snapshot completo de um esporte/data
// Nunca propaga falha de upstream/cache: o pior caso é o placeholder sintético
func (o *Orchestrator) Enrich(ctx context.Context, sportKey, date string) (events.EnrichmentSnapshot, error) {
	prof, ok := sport.Lookup(sportKey)
	if !ok {
		return events.EnrichmentSnapshot{}, fmt.Errorf("%w: %s", ErrUnknownSport, sportKey)
	}

	now := o.now()
	key := eventsKey(sportKey, date)

	raw, source := o.resolveRaw(ctx, prof, key, date, now)

	ttl := o.ttlFor(raw)
	epoch := now.Unix() / int64(ttl/time.Second)

	enriched := o.enrichAll(prof, raw, epoch)

	// Só dados frescos voltam pro cache; recachear o que veio do cache
	// estenderia a expiração
	if source == events.SourceLive {
		if err := o.Store.Set(ctx, key, raw, ttl); err != nil {
			o.Log.Warn("cache write-back failed", zap.String("key", key), zap.Error(err))
		}
	}

	snap := events.EnrichmentSnapshot{
		Sport:       sportKey,
		DateContext: date,
		DataSource:  source,
		GeneratedAt: now,
		Events:      enriched,
	}

	if o.OnSource != nil {
		o.OnSource(source)
	}
	if o.Publisher != nil {
		o.Publisher(ctx, snap)
	}
	if o.Broadcaster != nil {
		o.Broadcaster(snap)
	}

	return snap, nil
}

// resolveRaw aplica a cascata de fallback e devolve os eventos brutos + origem
func (o *Orchestrator) resolveRaw(ctx context.Context, prof sport.Profile, key, date string, now time.Time) ([]events.Event, string) {
	raw, err := o.Feed.FetchEvents(ctx, prof.Key, date)
	if err == nil && len(raw) > 0 {
		return raw, events.SourceLive
	}
	if err != nil {
		o.Log.Warn("upstream fetch failed, falling back to cache",
			zap.String("sport", prof.Key), zap.String("date", date), zap.Error(err))
		if o.OnUpstreamError != nil {
			o.OnUpstreamError(classify(err))
		}
	}

	var cached []events.Event
	hit, gerr := o.Store.Get(ctx, key, &cached)
	if gerr != nil {
		// Blob ilegível é tratado como miss e descartado
		o.Log.Warn("cache read failed", zap.String("key", key), zap.Error(gerr))
		_ = o.Store.Invalidate(ctx, key)
		hit = false
	}
	if hit && len(cached) > 0 {
		return cached, events.SourceCache
	}

	return synth.New(prof, o.Log).Generate(now), events.SourceSynthetic
}

// enrichAll roda o enriquecimento em paralelo com limite fixo de workers,
// preservando a ordem original dos eventos
func (o *Orchestrator) enrichAll(prof sport.Profile, raw []events.Event, epoch int64) []events.EnrichedEvent {
	eng := scoring.New(prof)
	out := make([]events.EnrichedEvent, len(raw))

	workers := o.Workers
	if workers <= 0 {
		workers = 4
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := range raw {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, ev events.Event) {
			defer func() {
				<-sem
				wg.Done()
			}()
			out[i] = o.enrichOne(eng, ev, epoch)
		}(i, raw[i])
	}

	wg.Wait()
	return out
}

// enrichOne anexa Prediction e BettingLines a um evento
// Qualquer falha (inclusive panic com dado upstream malformado) derruba só
// os campos de enriquecimento daquele evento, nunca o lote inteiro
func (o *Orchestrator) enrichOne(eng *scoring.Engine, ev events.Event, epoch int64) (out events.EnrichedEvent) {
	out = events.EnrichedEvent{Event: ev}

	defer func() {
		if r := recover(); r != nil {
			o.Log.Warn("enrichment panicked, returning raw event",
				zap.String("event_id", ev.EventID), zap.Any("panic", r))
			out.Prediction = nil
			out.BettingLines = nil
			if o.OnEnrichFailure != nil {
				o.OnEnrichFailure()
			}
		}
	}()

	seed := synth.SeedFor(ev.Sport, ev.EventID, epoch)
	pred, bl, err := o.enrichFn(eng, ev, seed)
	if err != nil {
		o.Log.Warn("enrichment failed, returning raw event",
			zap.String("event_id", ev.EventID), zap.Error(err))
		if o.OnEnrichFailure != nil {
			o.OnEnrichFailure()
		}
		return out
	}

	out.Prediction = &pred
	out.BettingLines = &bl
	return out
}

// ttlFor escolhe o TTL pelo tipo de dado: curto com jogo ao vivo no conjunto,
// médio pra agenda futura
func (o *Orchestrator) ttlFor(raw []events.Event) time.Duration {
	for _, ev := range raw {
		if ev.Status == events.StatusLive {
			return o.TTL.Live
		}
	}
	return o.TTL.Upcoming
}

func defaultEnrich(eng *scoring.Engine, ev events.Event, seed int64) (events.Prediction, events.BettingLines, error) {
	pred := eng.Score(ev.Home, ev.Away, seed)
	return pred, lines.Synthesize(pred, seed), nil
}

// classify mapeia o erro do upstream pra taxonomia das métricas
func classify(err error) string {
	var he *upstream.HTTPError
	var me *upstream.MalformedError
	switch {
	case errors.Is(err, upstream.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &he):
		return "http"
	case errors.As(err, &me):
		return "malformed"
	default:
		return "other"
	}
}

func eventsKey(sportKey, date string) string {
	return "events:" + sportKey + ":" + date
}
