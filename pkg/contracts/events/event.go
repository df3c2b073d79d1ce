package events

import "time"

// Status do ciclo de vida de um evento esportivo
const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinal     = "FINAL"
)

// Origem dos dados de uma agregação
const (
	SourceLive      = "live"
	SourceCache     = "cache"
	SourceSynthetic = "synthetic"
)

// TeamSide representa um dos lados de uma partida (mandante ou visitante)
type TeamSide struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Record       string `json:"record"` // "10-4" ou "10-4-1"
	Score        int    `json:"score"`
}

// Event representa um evento esportivo bruto, antes do enriquecimento
// Clock e Period só são preenchidos quando Status == LIVE
type Event struct {
	EventID   string    `json:"eventId"`
	Sport     string    `json:"sport"`
	StartTime time.Time `json:"startTime"`
	Venue     string    `json:"venue"`
	Status    string    `json:"status"` // SCHEDULED | LIVE | FINAL
	Period    int       `json:"period,omitempty"`
	Clock     string    `json:"clock,omitempty"`
	Home      TeamSide  `json:"home"`
	Away      TeamSide  `json:"away"`
	Note      string    `json:"note,omitempty"` // mensagem de off-season/placeholder
}
