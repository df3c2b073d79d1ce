package events

import "time"

// EnrichmentSnapshot é o resultado completo de uma agregação
// Publicado no tópico "event_enrichment_snapshots" e devolvido pela API REST
type EnrichmentSnapshot struct {
	Sport       string          `json:"sport"`
	DateContext string          `json:"dateContext"` // YYYY-MM-DD
	DataSource  string          `json:"dataSource"`  // live | cache | synthetic
	GeneratedAt time.Time       `json:"generatedAt"`
	Events      []EnrichedEvent `json:"events"`
}
