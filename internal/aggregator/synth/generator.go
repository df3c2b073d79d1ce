package synth

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/sport"
	"github.com/radieske/sports-feed-aggregator-poc/pkg/contracts/events"
)

// Percentual de vitórias aproximado por tier, usado pra sintetizar retrospectos
var tierWinPct = map[int]float64{
	1: 0.80,
	2: 0.65,
	3: 0.50,
	4: 0.35,
	5: 0.20,
}

// Generator produz eventos sintéticos com o mesmo formato dos dados reais
// É o último estágio do fallback: nunca falha, no pior caso devolve o placeholder
type Generator struct {
	prof sport.Profile
	log  *zap.Logger
}

func New(prof sport.Profile, log *zap.Logger) *Generator {
	return &Generator{prof: prof, log: log}
}

// Generate deriva a rodada corrente do calendário e monta os confrontos da semana
// A rotação é chaveada pela semana, então chamadas repetidas na mesma semana
// devolvem os mesmos confrontos
func (g *Generator) Generate(now time.Time) (out []events.Event) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("synthetic generation panicked, falling back to placeholder",
				zap.String("sport", g.prof.Key), zap.Any("panic", r))
			out = g.placeholder(now)
		}
	}()

	if !g.prof.InSeason(now) {
		return g.placeholder(now)
	}

	week := g.prof.Week(now)
	weekStart := g.prof.SeasonStart(now).Add(time.Duration(week) * 7 * 24 * time.Hour)

	// Embaralhamento determinístico do pool, chaveado por (esporte, semana)
	rng := rand.New(rand.NewSource(SeedFor(g.prof.Key, "matchups", int64(week))))
	perm := rng.Perm(len(g.prof.Teams))

	out = make([]events.Event, 0, g.prof.MatchupsPerWeek)
	for i := 0; i < g.prof.MatchupsPerWeek && 2*i+1 < len(perm); i++ {
		home := g.prof.Teams[perm[2*i]]
		away := g.prof.Teams[perm[2*i+1]]

		// Kickoffs espalhados pela semana, sempre no início da noite
		kickoff := weekStart.Add(time.Duration(i%4)*24*time.Hour + time.Duration(19+i/4)*time.Hour)

		ev := events.Event{
			EventID:   fmt.Sprintf("%s-w%02d-%s-%s", g.prof.Key, week, strings.ToLower(home.Abbreviation), strings.ToLower(away.Abbreviation)),
			Sport:     g.prof.Key,
			StartTime: kickoff,
			Venue:     home.Venue,
			Home:      events.TeamSide{Name: home.Name, Abbreviation: home.Abbreviation, Record: g.record(home.Tier, week)},
			Away:      events.TeamSide{Name: away.Name, Abbreviation: away.Abbreviation, Record: g.record(away.Tier, week)},
		}

		g.applyProgress(&ev, home.Tier, away.Tier, week, now)
		out = append(out, ev)
	}

	return out
}

// applyProgress deriva status, período, relógio e placar do tempo decorrido
// desde o kickoff calculado
func (g *Generator) applyProgress(ev *events.Event, homeTier, awayTier, week int, now time.Time) {
	elapsed := now.Sub(ev.StartTime)

	switch {
	case elapsed < 0:
		ev.Status = events.StatusScheduled
		return

	case elapsed < g.prof.GameDuration():
		ev.Status = events.StatusLive
		period := int(elapsed/g.prof.PeriodLength) + 1
		remaining := g.prof.PeriodLength - elapsed%g.prof.PeriodLength
		ev.Period = period
		ev.Clock = fmt.Sprintf("%d:%02d", int(remaining.Minutes()), int(remaining.Seconds())%60)
		g.walkScores(ev, homeTier, awayTier, week, period)

	default:
		// Evento encerrado nunca carrega relógio
		ev.Status = events.StatusFinal
		g.walkScores(ev, homeTier, awayTier, week, g.prof.Periods)
	}
}

// walkScores acumula um passeio aleatório limitado por período, com viés de tier,
// seedado por (confronto, semana) pra ser reprodutível dentro da janela de cache
func (g *Generator) walkScores(ev *events.Event, homeTier, awayTier, week, periods int) {
	rng := rand.New(rand.NewSource(SeedFor(g.prof.Key, ev.EventID, int64(week))))

	home, away := 0, 0
	for p := 0; p < periods; p++ {
		home += g.periodPoints(rng, homeTier)
		away += g.periodPoints(rng, awayTier)
	}

	// Placar parcial pode ficar abaixo do piso do esporte; só o teto é aplicado
	ev.Home.Score = clamp(home, 0, g.prof.ScoreMax)
	ev.Away.Score = clamp(away, 0, g.prof.ScoreMax)
}

// periodPoints gera os pontos de um período, com times mais fortes tendendo a mais
func (g *Generator) periodPoints(rng *rand.Rand, tier int) int {
	pts := g.prof.PeriodScoreBase + rng.Intn(g.prof.PeriodScoreSpread)
	if tier >= 1 && tier <= 2 {
		pts += 2
	}
	if tier == 5 {
		pts--
	}
	if pts < 0 {
		pts = 0
	}
	return pts
}

// record sintetiza um retrospecto plausível para o ponto atual da temporada
func (g *Generator) record(tier, week int) string {
	games := week
	if games > g.prof.SeasonWeeks {
		games = g.prof.SeasonWeeks
	}

	pct, ok := tierWinPct[tier]
	if !ok {
		pct = 0.50
	}

	wins := int(float64(games)*pct + 0.5)
	return fmt.Sprintf("%d-%d", wins, games-wins)
}

// placeholder é a resposta total do off-season: nunca inventa jogo ao vivo
func (g *Generator) placeholder(now time.Time) []events.Event {
	next := time.Date(now.Year(), g.prof.SeasonStartMonth, g.prof.SeasonStartDay, 0, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(1, 0, 0)
	}

	return []events.Event{{
		EventID:   fmt.Sprintf("%s-offseason", g.prof.Key),
		Sport:     g.prof.Key,
		StartTime: next,
		Venue:     "TBD",
		Status:    events.StatusScheduled,
		Home:      events.TeamSide{Name: "TBD", Abbreviation: "TBD"},
		Away:      events.TeamSide{Name: "TBD", Abbreviation: "TBD"},
		Note:      fmt.Sprintf("%s season has not started; next season begins %s", g.prof.Key, next.Format("2006-01-02")),
	}}
}

// SeedFor gera um seed determinístico via FNV-1a sobre (esporte, chave, n)
// Também é usado pelo orquestrador pra seedar o jitter de enriquecimento
func SeedFor(sportKey, key string, n int64) int64 {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%s|%s|%d", sportKey, key, n)
	return int64(h.Sum64())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
