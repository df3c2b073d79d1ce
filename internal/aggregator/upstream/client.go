package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/sports-feed-aggregator-poc/pkg/contracts/events"
)

// ErrTimeout indica que o feed não respondeu dentro do budget da tentativa única
var ErrTimeout = errors.New("upstream timeout")

// HTTPError indica resposta com status fora de 2xx
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream http status %d", e.Status)
}

// MalformedError indica payload que não respeita o shape esperado do feed
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return "upstream malformed payload: " + e.Reason
}

// Client faz uma única tentativa de busca no feed upstream, sem retry
// O fallback é responsabilidade do orquestrador, não deste componente
type Client struct {
	base    string
	timeout time.Duration
	http    *http.Client
	log     *zap.Logger
}

func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		base:    baseURL,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// FetchEvents busca os eventos brutos de um esporte/data no feed
// Falha com ErrTimeout, *HTTPError ou *MalformedError; nunca cacheia nada
func (c *Client) FetchEvents(ctx context.Context, sportKey, date string) ([]events.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := fmt.Sprintf("%s/feed/%s/events?date=%s", c.base, url.PathEscape(sportKey), url.QueryEscape(date))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, time.Since(start).Round(time.Millisecond))
		}
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &HTTPError{Status: resp.StatusCode}
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &MalformedError{Reason: "invalid json: " + err.Error()}
	}

	out := make([]events.Event, 0, len(doc.Events))
	for i, we := range doc.Events {
		if we.ID == "" {
			return nil, &MalformedError{Reason: fmt.Sprintf("event %d missing id", i)}
		}
		if we.Home.Name == "" || we.Away.Name == "" {
			return nil, &MalformedError{Reason: fmt.Sprintf("event %s missing team name", we.ID)}
		}
		out = append(out, we.toEvent(sportKey))
	}

	c.log.Debug("upstream fetch ok",
		zap.String("sport", sportKey),
		zap.String("date", date),
		zap.Int("events", len(out)),
		zap.Duration("latency", time.Since(start)),
	)

	return out, nil
}
