package sport

import (
	"sort"
	"time"
)

// Team é uma entrada do pool fixo de times de um esporte
// Tier é a faixa heurística de força (1 = elite ... 5 = fraco)
type Team struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Venue        string `json:"venue"`
	Tier         int    `json:"tier"`
}

// Profile parametriza o pipeline genérico para um esporte
// Uma única implementação de gerador/pontuação atende todos os perfis
type Profile struct {
	Key string

	// Calendário da temporada (âncora mês/dia, avaliada contra o relógio da requisição)
	SeasonStartMonth time.Month
	SeasonStartDay   int
	SeasonWeeks      int

	// Estrutura da partida
	Periods      int
	PeriodLength time.Duration

	// Limites e fatores de conversão do placar
	ScoreMin          int
	ScoreMax          int
	TotalBaseline     float64 // placar combinado esperado
	PointsPerStrength float64 // unidades de força -> pontos de spread
	HomeField         float64 // vantagem de mando, em unidades de força

	// Thresholds de edge (divergência em pontos frente à linha nominal)
	EdgeHigh   float64
	EdgeMedium float64

	// Geração sintética
	MatchupsPerWeek   int
	PeriodScoreBase   int // piso de pontos por período por time
	PeriodScoreSpread int // amplitude do passeio aleatório por período

	Teams []Team
}

// GameDuration é a duração total de jogo usada na derivação de status
func (p Profile) GameDuration() time.Duration {
	return time.Duration(p.Periods) * p.PeriodLength
}

// SeasonStart resolve o início da temporada corrente relativo a now
// Se ainda não chegou a âncora deste ano, a temporada vigente é a do ano anterior
func (p Profile) SeasonStart(now time.Time) time.Time {
	start := time.Date(now.Year(), p.SeasonStartMonth, p.SeasonStartDay, 0, 0, 0, 0, now.Location())
	if now.Before(start) {
		start = time.Date(now.Year()-1, p.SeasonStartMonth, p.SeasonStartDay, 0, 0, 0, 0, now.Location())
	}
	return start
}

// Week retorna a semana corrente da temporada (0-based)
func (p Profile) Week(now time.Time) int {
	return int(now.Sub(p.SeasonStart(now)) / (7 * 24 * time.Hour))
}

// InSeason indica se now cai dentro da janela ativa da temporada
func (p Profile) InSeason(now time.Time) bool {
	w := p.Week(now)
	return w >= 0 && w < p.SeasonWeeks
}

// TeamByName retorna o time do pool e se ele existe
func (p Profile) TeamByName(name string) (Team, bool) {
	for _, t := range p.Teams {
		if t.Name == name {
			return t, true
		}
	}
	return Team{}, false
}

// TeamTier retorna a faixa de força do time; 0 quando desconhecido
func (p Profile) TeamTier(name string) int {
	if t, ok := p.TeamByName(name); ok {
		return t.Tier
	}
	return 0
}

// Lookup resolve um perfil pelo identificador do esporte
func Lookup(key string) (Profile, bool) {
	p, ok := registry[key]
	return p, ok
}

// Keys lista os esportes suportados em ordem estável
func Keys() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
