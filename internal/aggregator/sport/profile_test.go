package sport

import (
	"testing"
	"time"
)

func TestSeasonCalendar(t *testing.T) {
	prof, ok := Lookup(Football)
	if !ok {
		t.Fatal("football profile missing")
	}

	tests := []struct {
		name      string
		now       time.Time
		wantIn    bool
		wantWeek  int
		wantStart time.Time
	}{
		{
			name:      "opening day",
			now:       time.Date(2025, time.September, 4, 12, 0, 0, 0, time.UTC),
			wantIn:    true,
			wantWeek:  0,
			wantStart: time.Date(2025, time.September, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "mid season",
			now:       time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC),
			wantIn:    true,
			wantWeek:  5,
			wantStart: time.Date(2025, time.September, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "january still belongs to previous year's season",
			now:       time.Date(2026, time.January, 2, 12, 0, 0, 0, time.UTC),
			wantIn:    true,
			wantWeek:  17,
			wantStart: time.Date(2025, time.September, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "summer off-season",
			now:      time.Date(2025, time.July, 15, 12, 0, 0, 0, time.UTC),
			wantIn:   false,
			wantWeek: 44,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prof.InSeason(tt.now); got != tt.wantIn {
				t.Errorf("InSeason = %v, want %v", got, tt.wantIn)
			}
			if got := prof.Week(tt.now); got != tt.wantWeek {
				t.Errorf("Week = %d, want %d", got, tt.wantWeek)
			}
			if !tt.wantStart.IsZero() {
				if got := prof.SeasonStart(tt.now); !got.Equal(tt.wantStart) {
					t.Errorf("SeasonStart = %v, want %v", got, tt.wantStart)
				}
			}
		})
	}
}

func TestLookupAndKeys(t *testing.T) {
	keys := Keys()
	if len(keys) != 2 {
		t.Fatalf("Keys() = %v, want two sports", keys)
	}

	for _, k := range keys {
		prof, ok := Lookup(k)
		if !ok {
			t.Fatalf("Lookup(%q) missing", k)
		}
		if len(prof.Teams) < 2*prof.MatchupsPerWeek {
			t.Errorf("%s: pool of %d teams cannot fill %d matchups", k, len(prof.Teams), prof.MatchupsPerWeek)
		}
		if prof.ScoreMax <= prof.ScoreMin {
			t.Errorf("%s: invalid score bounds [%d,%d]", k, prof.ScoreMin, prof.ScoreMax)
		}
	}

	if _, ok := Lookup("curling"); ok {
		t.Error("Lookup should miss unknown sport")
	}
}

func TestTeamTier(t *testing.T) {
	prof, _ := Lookup(Basketball)

	if tier := prof.TeamTier("Boston Celtics"); tier != 1 {
		t.Errorf("TeamTier(Celtics) = %d, want 1", tier)
	}
	if tier := prof.TeamTier("Springfield Isotopes"); tier != 0 {
		t.Errorf("TeamTier(unknown) = %d, want 0", tier)
	}
}
