package upstream

import (
	"time"

	"github.com/radieske/sports-feed-aggregator-poc/pkg/contracts/events"
)

// Formato do documento JSON do feed upstream
// O mesmo shape é usado pelo client (decode) e pelo feed-simulator (encode)
type Document struct {
	Sport  string      `json:"sport"`
	Events []WireEvent `json:"events"`
}

type WireEvent struct {
	ID     string     `json:"id"`
	Date   time.Time  `json:"date"`
	Venue  string     `json:"venue"`
	Status WireStatus `json:"status"`
	Home   WireTeam   `json:"home"`
	Away   WireTeam   `json:"away"`
}

type WireStatus struct {
	State  string `json:"state"` // SCHEDULED | LIVE | FINAL
	Period int    `json:"period,omitempty"`
	Clock  string `json:"clock,omitempty"`
}

type WireTeam struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Record       string `json:"record"`
	Score        int    `json:"score"`
}

// WireFromEvent converte o tipo interno pro shape do feed
func WireFromEvent(ev events.Event) WireEvent {
	return WireEvent{
		ID:    ev.EventID,
		Date:  ev.StartTime,
		Venue: ev.Venue,
		Status: WireStatus{
			State:  ev.Status,
			Period: ev.Period,
			Clock:  ev.Clock,
		},
		Home: WireTeam{Name: ev.Home.Name, Abbreviation: ev.Home.Abbreviation, Record: ev.Home.Record, Score: ev.Home.Score},
		Away: WireTeam{Name: ev.Away.Name, Abbreviation: ev.Away.Abbreviation, Record: ev.Away.Record, Score: ev.Away.Score},
	}
}

// toEvent converte uma entrada do feed pro tipo interno
// Eventos FINAL nunca carregam relógio, mesmo que o feed envie
func (we WireEvent) toEvent(sportKey string) events.Event {
	ev := events.Event{
		EventID:   we.ID,
		Sport:     sportKey,
		StartTime: we.Date,
		Venue:     we.Venue,
		Status:    we.Status.State,
		Period:    we.Status.Period,
		Clock:     we.Status.Clock,
		Home:      events.TeamSide{Name: we.Home.Name, Abbreviation: we.Home.Abbreviation, Record: we.Home.Record, Score: we.Home.Score},
		Away:      events.TeamSide{Name: we.Away.Name, Abbreviation: we.Away.Abbreviation, Record: we.Away.Record, Score: we.Away.Score},
	}

	if ev.Status == events.StatusFinal {
		ev.Period = 0
		ev.Clock = ""
	}

	return ev
}
