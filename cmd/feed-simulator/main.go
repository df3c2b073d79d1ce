package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/sport"
	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/synth"
	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/upstream"
	"github.com/radieske/sports-feed-aggregator-poc/internal/shared/config"
	"github.com/radieske/sports-feed-aggregator-poc/internal/shared/logger"
	"github.com/radieske/sports-feed-aggregator-poc/pkg/contracts/events"
)

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}

	// Métricas Prometheus para monitoramento do feed simulado
	feedRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_requests_total",
		Help: "Requisições ao feed por resultado",
	}, []string{"result"})
	wsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "feed_ws_connections",
		Help: "Clientes WebSocket conectados",
	})
	wsMessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "feed_ws_messages_sent_total",
		Help: "Total de mensagens WS enviadas",
	})
)

// Representa uma conexão de cliente WebSocket
type clientConn struct {
	id   string
	conn *websocket.Conn
}

// Estrutura responsável por gerenciar os clientes conectados via WebSocket
// e realizar broadcast de mensagens para todos eles.
type hub struct {
	mu      sync.RWMutex
	clients map[string]*clientConn
	log     *zap.Logger
}

func newHub(log *zap.Logger) *hub {
	return &hub{
		clients: make(map[string]*clientConn),
		log:     log,
	}
}

// Adiciona um novo cliente ao hub e incrementa a métrica de conexões
func (h *hub) add(c *clientConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	wsConnections.Inc()
	h.log.Info("ws client connected", zap.String("client_id", c.id))
}

// Remove um cliente do hub e decrementa a métrica de conexões
func (h *hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[id]; ok {
		delete(h.clients, id)
		wsConnections.Dec()
		h.log.Info("ws client disconnected", zap.String("client_id", id))
	}
}

// Envia uma mensagem para todos os clientes conectados
func (h *hub) broadcast(v any) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	msg, _ := json.Marshal(v)
	for id, c := range h.clients {
		c.conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Warn("ws write failed", zap.String("client_id", id), zap.Error(err))
			_ = c.conn.Close()
		} else {
			wsMessagesSent.Inc()
		}
	}
}

// server serve o feed JSON com injeção de falhas configurável
// failureRate: fração de requisições que retornam erro de propósito,
// pra exercitar a cascata de fallback do aggregator
type server struct {
	log         *zap.Logger
	failureRate float64
	generators  map[string]*synth.Generator
}

func newServer(log *zap.Logger, failureRate float64) *server {
	gens := make(map[string]*synth.Generator)
	for _, key := range sport.Keys() {
		prof, _ := sport.Lookup(key)
		gens[key] = synth.New(prof, log)
	}
	return &server{log: log, failureRate: failureRate, generators: gens}
}

// feedHandler responde GET /feed/{sport}/events com o documento do feed
func (s *server) feedHandler(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 || parts[0] != "feed" || parts[2] != "events" {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	gen, ok := s.generators[parts[1]]
	if !ok {
		feedRequests.WithLabelValues("unknown_sport").Inc()
		http.Error(w, "unknown sport", http.StatusNotFound)
		return
	}

	// Injeção de falhas: 500, 429 ou resposta pendurada
	if s.failureRate > 0 && rand.Float64() < s.failureRate {
		switch rand.Intn(3) {
		case 0:
			feedRequests.WithLabelValues("fail_500").Inc()
			http.Error(w, "internal error", http.StatusInternalServerError)
		case 1:
			feedRequests.WithLabelValues("fail_429").Inc()
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		default:
			feedRequests.WithLabelValues("fail_hang").Inc()
			time.Sleep(15 * time.Second)
			http.Error(w, "timeout", http.StatusGatewayTimeout)
		}
		return
	}

	evs := gen.Generate(time.Now())
	doc := upstream.Document{Sport: parts[1], Events: make([]upstream.WireEvent, 0, len(evs))}
	for _, ev := range evs {
		doc.Events = append(doc.Events, upstream.WireFromEvent(ev))
	}

	feedRequests.WithLabelValues("ok").Inc()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(doc)
}

// liveTicker reenvia periodicamente os eventos ao vivo para os clientes WS
func (s *server) liveTicker(h *hub) {
	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		for key, gen := range s.generators {
			for _, ev := range gen.Generate(time.Now()) {
				if ev.Status != events.StatusLive {
					continue
				}
				h.broadcast(map[string]any{"sport": key, "event": upstream.WireFromEvent(ev)})
			}
		}
	}
}

func main() {
	cfg := config.Load()
	if cfg.ServiceName == "" {
		cfg.ServiceName = "feed-simulator"
	}

	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	prometheus.MustRegister(feedRequests, wsConnections, wsMessagesSent)

	h := newHub(log)
	s := newServer(log, cfg.FeedFailureRate)

	go s.liveTicker(h)

	// ==== MUX PÚBLICO (HTTP principal): /feed/... e /ws
	appMux := http.NewServeMux()

	appMux.HandleFunc("/feed/", s.feedHandler)

	appMux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("ws upgrade failed", zap.Error(err))
			return
		}
		id := fmt.Sprintf("%d", time.Now().UnixNano())
		c := &clientConn{id: id, conn: conn}
		h.add(c)

		// Goroutine para manter a conexão viva e remover cliente ao desconectar
		go func() {
			defer func() {
				h.remove(id)
				_ = conn.Close()
			}()
			_ = conn.SetReadDeadline(time.Time{})
			for {
				// Lê e descarta mensagens do cliente para manter o socket limpo
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})

	// ==== MUX DE MÉTRICAS (/healthz, /metrics)
	metricsMux := http.NewServeMux()
	metricsMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	metricsMux.Handle("/metrics", promhttp.Handler())

	// Servidor de métricas em goroutine
	go func() {
		metricsAddr := fmt.Sprintf(":%s", cfg.MetricsPort)
		log.Info("feed simulator (metrics) running",
			zap.String("addr", metricsAddr),
			zap.String("paths", "/healthz,/metrics"),
		)
		if err := http.ListenAndServe(metricsAddr, metricsMux); err != nil {
			log.Fatal("metrics server error", zap.Error(err))
		}
	}()

	// Servidor público (feed + WS)
	publicAddr := fmt.Sprintf(":%s", cfg.HTTPPort)
	log.Info("feed simulator (public) running",
		zap.String("addr", publicAddr),
		zap.String("paths", "/feed/{sport}/events,/ws"),
	)
	if err := http.ListenAndServe(publicAddr, appMux); err != nil {
		log.Fatal("public server error", zap.Error(err))
	}
}
