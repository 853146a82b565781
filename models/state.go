package models

import "time"

// WeeklyStats tracks the current week's pick counters.
// WeekStart is the week-boundary key (see calendar.go); stats reset
// whenever it no longer matches the current week's Monday.
type WeeklyStats struct {
	Picks     int    `json:"picks" bson:"picks"`
	Correct   int    `json:"correct" bson:"correct"`
	WeekStart string `json:"weekStart" bson:"weekStart"`
}

// UserState is the durable per-user game state. It is owned exclusively by
// the state store for one user and keyed by the opaque external user ID.
// Invariants maintained by every mutation: bestStreak >= currentStreak and
// correctPicks <= totalPicks.
type UserState struct {
	CurrentStreak int            `json:"currentStreak" bson:"currentStreak"`
	BestStreak    int            `json:"bestStreak" bson:"bestStreak"`
	TotalPicks    int            `json:"totalPicks" bson:"totalPicks"`
	CorrectPicks  int            `json:"correctPicks" bson:"correctPicks"`
	TodaysPick    *Pick          `json:"todaysPick" bson:"todaysPick"`
	LastPickDate  string         `json:"lastPickDate" bson:"lastPickDate"`
	Theme         string         `json:"theme" bson:"theme"`
	SoundEnabled  bool           `json:"soundEnabled" bson:"soundEnabled"`
	DisplayName   string         `json:"displayName" bson:"displayName"`
	IsPublic      bool           `json:"isPublic" bson:"isPublic"`
	WeeklyStats   WeeklyStats    `json:"weeklyStats" bson:"weeklyStats"`
	Results       []ResultRecord `json:"results" bson:"results"`
}

// NewUserState returns the initial state for a user with no stored data
func NewUserState(now time.Time) UserState {
	return UserState{
		Theme:        "dark",
		SoundEnabled: true,
		IsPublic:     true,
		WeeklyStats:  WeeklyStats{WeekStart: WeekStart(now)},
	}
}

// Normalize applies day-boundary and week-boundary resets relative to now.
// It is pure and idempotent: calling it twice with the same now yields the
// same state, and a state already aligned to now is returned unchanged.
func (s UserState) Normalize(now time.Time) UserState {
	today := DayString(now)
	if s.LastPickDate != today {
		s.TodaysPick = nil
		s.LastPickDate = today
	}
	if week := WeekStart(now); s.WeeklyStats.WeekStart != week {
		s.WeeklyStats = WeeklyStats{WeekStart: week}
	}
	return s
}

// RecordPick registers today's pick and bumps the pick counters
func (s UserState) RecordPick(pick Pick) UserState {
	p := pick
	s.TodaysPick = &p
	s.LastPickDate = pick.Date
	s.TotalPicks++
	s.WeeklyStats.Picks++
	return s
}

// ApplyResult folds a resolved outcome into the streak counters.
// A correct pick extends the streak; a wrong one resets it to zero.
func (s UserState) ApplyResult(correct bool) UserState {
	if correct {
		s.CorrectPicks++
		s.CurrentStreak++
		s.WeeklyStats.Correct++
	} else {
		s.CurrentStreak = 0
	}
	if s.CurrentStreak > s.BestStreak {
		s.BestStreak = s.CurrentStreak
	}
	return s
}

// HasPickedToday reports whether the stored pick is for the given matchup today
func (s *UserState) HasPickedToday(matchupID, today string) bool {
	return s.TodaysPick != nil &&
		s.TodaysPick.MatchupID == matchupID &&
		s.TodaysPick.Date == today
}

// Accuracy returns the rounded percentage of correct picks
func (s *UserState) Accuracy() int {
	if s.TotalPicks == 0 {
		return 0
	}
	return int(float64(s.CorrectPicks)/float64(s.TotalPicks)*100 + 0.5)
}
