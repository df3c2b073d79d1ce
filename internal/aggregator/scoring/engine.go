package scoring

import (
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/radieske/sports-feed-aggregator-poc/internal/aggregator/sport"
	"github.com/radieske/sports-feed-aggregator-poc/pkg/contracts/events"
)

// Força base por tier; times fora do pool recebem o valor de tier médio
var tierBase = map[int]float64{
	1: 92,
	2: 84,
	3: 76,
	4: 68,
	5: 60,
}

const (
	defaultStrength = 76 // tier médio para times desconhecidos
	strengthMin     = 35
	strengthMax     = 95

	// Escala da curva logística: diferencial de ~20 unidades => split ~75/25
	logisticScale = 42

	confidenceMin = 55
	confidenceMax = 95
)

// Engine converte um par de times em uma Prediction completa
// É puro e nunca falha: entradas ausentes caem nos defaults
type Engine struct {
	prof sport.Profile
}

func New(prof sport.Profile) *Engine {
	return &Engine{prof: prof}
}

// Score calcula a Prediction de uma partida, com o mandante como referência
// O seed controla apenas o jitter do placar previsto; o resto é determinístico
func (e *Engine) Score(home, away events.TeamSide, seed int64) events.Prediction {
	sh := e.strength(home)
	sa := e.strength(away)

	// Diferencial de força já incluindo mando de campo
	d := (sh + e.prof.HomeField) - sa

	// Percentuais inteiros para que os dois lados somem exatamente 100
	homePct := math.Round(clampF(logistic(d), 5, 95))
	awayPct := 100 - homePct

	// Convenção padrão: spread negativo favorece o mandante
	spread := roundHalf(-d / e.prof.PointsPerStrength)

	conf := confidenceMin + int(math.Abs(d))
	if conf > confidenceMax {
		conf = confidenceMax
	}

	hs, as := e.predictScores(homePct, seed)

	return events.Prediction{
		HomeWinProbability: homePct,
		AwayWinProbability: awayPct,
		PredictedSpread:    spread,
		Confidence:         conf,
		PredictedHomeScore: hs,
		PredictedAwayScore: as,
		Recommendation:     recommend(homePct),
		Edge:               e.edge(spread, home.Name, away.Name),
	}
}

// strength deriva a força do time: base do tier + ajuste do retrospecto
func (e *Engine) strength(side events.TeamSide) float64 {
	base := float64(defaultStrength)
	if b, ok := tierBase[e.prof.TeamTier(side.Name)]; ok {
		base = b
	}

	if w, l, ok := parseRecord(side.Record); ok {
		base += 0.8 * float64(w-l)
	}

	return clampF(base, strengthMin, strengthMax)
}

// predictScores reparte o total esperado proporcionalmente à probabilidade,
// com jitter independente por lado dentro dos limites do esporte
func (e *Engine) predictScores(homePct float64, seed int64) (int, int) {
	rng := rand.New(rand.NewSource(seed))

	share := homePct / 100
	hs := int(math.Round(e.prof.TotalBaseline*share)) + rng.Intn(7) - 3
	as := int(math.Round(e.prof.TotalBaseline*(1-share))) + rng.Intn(7) - 3

	return clampI(hs, e.prof.ScoreMin, e.prof.ScoreMax),
		clampI(as, e.prof.ScoreMin, e.prof.ScoreMax)
}

// edge mede quanto o spread calculado diverge da linha nominal de mercado
// A linha nominal considera só os tiers, sem ajuste de retrospecto
func (e *Engine) edge(spread float64, homeName, awayName string) string {
	bh := float64(defaultStrength)
	if b, ok := tierBase[e.prof.TeamTier(homeName)]; ok {
		bh = b
	}
	ba := float64(defaultStrength)
	if b, ok := tierBase[e.prof.TeamTier(awayName)]; ok {
		ba = b
	}

	market := roundHalf(-((bh + e.prof.HomeField) - ba) / e.prof.PointsPerStrength)
	div := math.Abs(spread - market)

	switch {
	case div >= e.prof.EdgeHigh:
		return events.EdgeHigh
	case div >= e.prof.EdgeMedium:
		return events.EdgeMedium
	default:
		return events.EdgeLow
	}
}

// logistic mapeia o diferencial de força em probabilidade percentual do mandante
func logistic(d float64) float64 {
	return 100 / (1 + math.Pow(10, -d/logisticScale))
}

func recommend(homePct float64) string {
	switch {
	case homePct > 60:
		return events.RecHomeStrong
	case homePct > 55:
		return events.RecHomeLean
	case homePct >= 45:
		return events.RecTossUp
	case homePct >= 40:
		return events.RecAwayLean
	default:
		return events.RecAwayStrong
	}
}

// parseRecord aceita "W-L" ou "W-L-T"; qualquer outra coisa é ignorada
func parseRecord(rec string) (wins, losses int, ok bool) {
	parts := strings.Split(strings.TrimSpace(rec), "-")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, false
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	l, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return w, l, true
}

// roundHalf arredonda para o meio ponto mais próximo
func roundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
