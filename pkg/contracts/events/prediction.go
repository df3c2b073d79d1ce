package events

// Recomendação categórica derivada da probabilidade de vitória
const (
	RecHomeStrong = "HOME_STRONG"
	RecHomeLean   = "HOME_LEAN"
	RecTossUp     = "TOSS_UP"
	RecAwayLean   = "AWAY_LEAN"
	RecAwayStrong = "AWAY_STRONG"
)

// Classificação do edge frente à linha nominal de mercado
const (
	EdgeHigh   = "HIGH"
	EdgeMedium = "MEDIUM"
	EdgeLow    = "LOW"
)

// Prediction é a saída do motor de pontuação para um evento
// Probabilidades somam exatamente 100; spread negativo favorece o mandante
type Prediction struct {
	HomeWinProbability float64 `json:"homeWinProbability"`
	AwayWinProbability float64 `json:"awayWinProbability"`
	PredictedSpread    float64 `json:"predictedSpread"`
	Confidence         int     `json:"confidence"` // [55, 95]
	PredictedHomeScore int     `json:"predictedHomeScore"`
	PredictedAwayScore int     `json:"predictedAwayScore"`
	Recommendation     string  `json:"recommendation"`
	Edge               string  `json:"edge"` // HIGH | MEDIUM | LOW
}

// SpreadLine é a linha de handicap com preço padrão dos dois lados
type SpreadLine struct {
	Home      float64 `json:"home"`
	Away      float64 `json:"away"`
	HomePrice int     `json:"homePrice"` // odds americanas, ex: -110
	AwayPrice int     `json:"awayPrice"`
}

// MoneyLine em odds americanas: favorito negativo, azarão positivo
type MoneyLine struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// TotalLine é a linha de over/under centrada no placar combinado previsto
type TotalLine struct {
	Points     float64 `json:"points"`
	OverPrice  int     `json:"overPrice"`
	UnderPrice int     `json:"underPrice"`
}

// BettingLines agrega as linhas de mercado sintetizadas de uma Prediction
type BettingLines struct {
	Spread    SpreadLine `json:"spread"`
	Moneyline MoneyLine  `json:"moneyline"`
	Total     TotalLine  `json:"total"`
	Books     []string   `json:"books"`
}

// EnrichedEvent é o evento bruto acrescido dos campos de enriquecimento
// Prediction/BettingLines ficam nulos quando o enriquecimento falhou para o evento
type EnrichedEvent struct {
	Event
	Prediction   *Prediction   `json:"prediction,omitempty"`
	BettingLines *BettingLines `json:"bettingLines,omitempty"`
}
