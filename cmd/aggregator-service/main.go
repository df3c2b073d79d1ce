package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/enrich"
	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/httpapi"
	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/store"
	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/upstream"
	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/ws"
	sharedcache "github.com/radieske/sports-feed-aggregator-poc/internal/shared/cache"
	"github.com/radieske/sports-feed-aggregator-poc/internal/shared/config"
	"github.com/radieske/sports-feed-aggregator-poc/internal/shared/kafka"
	"github.com/radieske/sports-feed-aggregator-poc/internal/shared/logger"
	"github.com/radieske/sports-feed-aggregator-poc/internal/shared/metrics"
	"github.com/radieske/sports-feed-aggregator-poc/pkg/contracts/events"
)

func main() {
	// carrega config
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "aggregator-service"
	}

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("env", cfg.Env))

	// Métricas Prometheus da agregação
	sourceTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agg_source_total",
		Help: "agregações por origem dos dados brutos",
	}, []string{"source"})
	upstreamErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "agg_upstream_errors_total",
		Help: "falhas de upstream por tipo",
	}, []string{"kind"})
	enrichFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "agg_enrich_failures_total",
		Help: "eventos devolvidos sem campos de enriquecimento",
	})
	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{Name: "agg_cache_hits_total", Help: "hits no cache de agregação"})
	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{Name: "agg_cache_misses_total", Help: "misses no cache de agregação"})
	cacheEvictions := prometheus.NewCounter(prometheus.CounterOpts{Name: "agg_cache_evictions_total", Help: "despejos LRU do cache em memória"})
	prometheus.MustRegister(sourceTotal, upstreamErrors, enrichFailures, cacheHits, cacheMisses, cacheEvictions)

	// Seleciona o backend do cache de agregação
	var st store.Store
	healthFn := func(ctx context.Context) error { return nil }

	switch cfg.CacheBackend {
	case "redis":
		redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
		if err != nil {
			log.Fatal("failed to connect redis", zap.Error(err))
		}
		defer redisClient.Close()
		st = store.NewRedis(redisClient)
		healthFn = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		log.Info("redis cache backend ready", zap.String("addr", cfg.RedisAddr))
	default:
		mem := store.NewMemory(cfg.CacheCapacity)
		mem.OnHit = func() { cacheHits.Inc() }
		mem.OnMiss = func() { cacheMisses.Inc() }
		mem.OnEviction = func() { cacheEvictions.Inc() }
		st = mem
		log.Info("memory cache backend ready", zap.Int("capacity", cfg.CacheCapacity))
	}

	// Client do feed upstream: tentativa única com timeout duro
	feed := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, log)

	// Orquestrador da cascata live -> cache -> sintético
	orch := enrich.New(log, feed, st, enrich.TTLSet{
		Live:      cfg.TTLLive,
		Upcoming:  cfg.TTLUpcoming,
		Reference: cfg.TTLReference,
	})
	orch.OnSource = func(source string) { sourceTotal.WithLabelValues(source).Inc() }
	orch.OnUpstreamError = func(kind string) { upstreamErrors.WithLabelValues(kind).Inc() }
	orch.OnEnrichFailure = func() { enrichFailures.Inc() }

	// Hub WebSocket: snapshots recém-agregados são transmitidos aos inscritos
	hub := ws.NewHub(func(r *http.Request) bool { return true })
	orch.Broadcaster = hub.Broadcast

	// Publicação opcional de snapshots no Kafka (consumidos pelo snapshot-worker)
	if cfg.PublishSnapshots {
		writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicSnapshots)
		defer writer.Close()
		log.Info("kafka snapshot publisher ready", zap.String("topic", cfg.TopicSnapshots))

		orch.Publisher = func(ctx context.Context, snap events.EnrichmentSnapshot) {
			b, err := json.Marshal(snap)
			if err != nil {
				return
			}
			wctx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			if err := kafka.WriteJSON(wctx, writer, snap.Sport+":"+snap.DateContext, b); err != nil {
				log.Warn("snapshot publish failed", zap.Error(err))
			}
		}
	}

	// sobe servidor de métricas e health
	msrv := metrics.StartMetricsServer(cfg.MetricsPort, healthFn)
	log.Info("metrics/health server starting", zap.String("addr", msrv.Addr))

	// Servidor público: REST + WebSocket
	api := &httpapi.API{
		Log:          log,
		Orch:         orch,
		Store:        st,
		TTLReference: cfg.TTLReference,
	}

	mux := http.NewServeMux()
	mux.Handle("/", api.Router())
	mux.HandleFunc("/ws", hub.HandleWS)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		log.Info("public server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("public server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shCancel()
	_ = srv.Shutdown(shCtx)
	_ = msrv.Shutdown(shCtx)
}
