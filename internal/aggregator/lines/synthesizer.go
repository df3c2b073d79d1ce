package lines

import (
	"math"
	"math/rand"

	"github.com/radieske/sports-feed-aggregator-poc/pkg/contracts/events"
)

// Pool fixo de casas; cada evento lista um subconjunto estável dentro da janela de cache
var bookPool = []string{
	"DraftKings",
	"FanDuel",
	"BetMGM",
	"Caesars",
	"PointsBet",
	"Bet365",
}

const (
	standardVig = -110
	vigFactor   = 1.045 // margem embutida nas moneylines dos dois lados
)

// Synthesize converte uma Prediction em linhas de mercado convencionais
// Todo o jitter vem do seed, então a mesma (chave, época) produz as mesmas linhas
func Synthesize(p events.Prediction, seed int64) events.BettingLines {
	rng := rand.New(rand.NewSource(seed))

	spread := events.SpreadLine{
		Home:      p.PredictedSpread,
		Away:      -p.PredictedSpread,
		HomePrice: jitterPrice(rng),
		AwayPrice: jitterPrice(rng),
	}

	ml := events.MoneyLine{
		Home: americanOdds(p.HomeWinProbability / 100),
		Away: americanOdds(p.AwayWinProbability / 100),
	}

	total := events.TotalLine{
		Points:     roundHalf(float64(p.PredictedHomeScore+p.PredictedAwayScore) + rng.Float64()*2 - 1),
		OverPrice:  jitterPrice(rng),
		UnderPrice: jitterPrice(rng),
	}

	return events.BettingLines{
		Spread:    spread,
		Moneyline: ml,
		Total:     total,
		Books:     sampleBooks(rng),
	}
}

// americanOdds converte probabilidade (0..1) em odds americanas com vig
// Favorito sai negativo, azarão positivo; o vig faz as probabilidades
// implícitas dos dois lados somarem pouco mais de 100%
func americanOdds(prob float64) int {
	pv := prob * vigFactor
	if pv > 0.97 {
		pv = 0.97
	}
	if pv < 0.03 {
		pv = 0.03
	}

	if pv >= 0.5 {
		return -int(math.Round(pv / (1 - pv) * 100))
	}
	return int(math.Round((1 - pv) / pv * 100))
}

// jitterPrice varia o preço padrão em até 5 pontos pra imitar variância entre casas
func jitterPrice(rng *rand.Rand) int {
	return standardVig + rng.Intn(11) - 5
}

// sampleBooks escolhe de 3 a 5 casas do pool, de forma determinística pelo seed
func sampleBooks(rng *rand.Rand) []string {
	n := 3 + rng.Intn(3)
	idx := rng.Perm(len(bookPool))[:n]

	out := make([]string, 0, n)
	for _, i := range idx {
		out = append(out, bookPool[i])
	}
	return out
}

func roundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}
