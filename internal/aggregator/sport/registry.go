package sport

import "time"

// Identificadores dos esportes suportados
const (
	Football   = "football"
	Basketball = "basketball"
)

var registry = map[string]Profile{
	Football: {
		Key:              Football,
		SeasonStartMonth: time.September,
		SeasonStartDay:   4,
		SeasonWeeks:      18,

		Periods:      4,
		PeriodLength: 15 * time.Minute,

		ScoreMin:          0,
		ScoreMax:          70,
		TotalBaseline:     45,
		PointsPerStrength: 2.8,
		HomeField:         2.5,

		EdgeHigh:   3.0,
		EdgeMedium: 1.5,

		MatchupsPerWeek:   6,
		PeriodScoreBase:   0,
		PeriodScoreSpread: 11,

		Teams: []Team{
			{Name: "Kansas City Chiefs", Abbreviation: "KC", Venue: "Arrowhead Stadium", Tier: 1},
			{Name: "Buffalo Bills", Abbreviation: "BUF", Venue: "Highmark Stadium", Tier: 1},
			{Name: "San Francisco 49ers", Abbreviation: "SF", Venue: "Levi's Stadium", Tier: 1},
			{Name: "Baltimore Ravens", Abbreviation: "BAL", Venue: "M&T Bank Stadium", Tier: 2},
			{Name: "Philadelphia Eagles", Abbreviation: "PHI", Venue: "Lincoln Financial Field", Tier: 2},
			{Name: "Detroit Lions", Abbreviation: "DET", Venue: "Ford Field", Tier: 2},
			{Name: "Dallas Cowboys", Abbreviation: "DAL", Venue: "AT&T Stadium", Tier: 3},
			{Name: "Miami Dolphins", Abbreviation: "MIA", Venue: "Hard Rock Stadium", Tier: 3},
			{Name: "Green Bay Packers", Abbreviation: "GB", Venue: "Lambeau Field", Tier: 3},
			{Name: "Cincinnati Bengals", Abbreviation: "CIN", Venue: "Paycor Stadium", Tier: 3},
			{Name: "Pittsburgh Steelers", Abbreviation: "PIT", Venue: "Acrisure Stadium", Tier: 4},
			{Name: "Seattle Seahawks", Abbreviation: "SEA", Venue: "Lumen Field", Tier: 4},
			{Name: "Chicago Bears", Abbreviation: "CHI", Venue: "Soldier Field", Tier: 4},
			{Name: "New York Giants", Abbreviation: "NYG", Venue: "MetLife Stadium", Tier: 5},
			{Name: "Carolina Panthers", Abbreviation: "CAR", Venue: "Bank of America Stadium", Tier: 5},
			{Name: "New England Patriots", Abbreviation: "NE", Venue: "Gillette Stadium", Tier: 5},
		},
	},

	Basketball: {
		Key:              Basketball,
		SeasonStartMonth: time.October,
		SeasonStartDay:   22,
		SeasonWeeks:      24,

		Periods:      4,
		PeriodLength: 12 * time.Minute,

		ScoreMin:          70,
		ScoreMax:          160,
		TotalBaseline:     224,
		PointsPerStrength: 1.6,
		HomeField:         2.0,

		EdgeHigh:   4.5,
		EdgeMedium: 2.0,

		MatchupsPerWeek:   8,
		PeriodScoreBase:   22,
		PeriodScoreSpread: 13,

		Teams: []Team{
			{Name: "Boston Celtics", Abbreviation: "BOS", Venue: "TD Garden", Tier: 1},
			{Name: "Denver Nuggets", Abbreviation: "DEN", Venue: "Ball Arena", Tier: 1},
			{Name: "Oklahoma City Thunder", Abbreviation: "OKC", Venue: "Paycom Center", Tier: 1},
			{Name: "Milwaukee Bucks", Abbreviation: "MIL", Venue: "Fiserv Forum", Tier: 2},
			{Name: "Minnesota Timberwolves", Abbreviation: "MIN", Venue: "Target Center", Tier: 2},
			{Name: "New York Knicks", Abbreviation: "NYK", Venue: "Madison Square Garden", Tier: 2},
			{Name: "Dallas Mavericks", Abbreviation: "DAL", Venue: "American Airlines Center", Tier: 2},
			{Name: "Phoenix Suns", Abbreviation: "PHX", Venue: "Footprint Center", Tier: 3},
			{Name: "Los Angeles Lakers", Abbreviation: "LAL", Venue: "Crypto.com Arena", Tier: 3},
			{Name: "Golden State Warriors", Abbreviation: "GSW", Venue: "Chase Center", Tier: 3},
			{Name: "Cleveland Cavaliers", Abbreviation: "CLE", Venue: "Rocket Mortgage FieldHouse", Tier: 3},
			{Name: "Sacramento Kings", Abbreviation: "SAC", Venue: "Golden 1 Center", Tier: 4},
			{Name: "Miami Heat", Abbreviation: "MIA", Venue: "Kaseya Center", Tier: 4},
			{Name: "Chicago Bulls", Abbreviation: "CHI", Venue: "United Center", Tier: 4},
			{Name: "Charlotte Hornets", Abbreviation: "CHA", Venue: "Spectrum Center", Tier: 5},
			{Name: "Washington Wizards", Abbreviation: "WAS", Venue: "Capital One Arena", Tier: 5},
		},
	},
}
