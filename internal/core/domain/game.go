package domain

// Mode selects the round structure of a game.
type Mode string

const (
	ModeDaily Mode = "daily"
	ModeFree  Mode = "free"
)

const (
	// StartingScore is the budget a player burns through with bad guesses.
	StartingScore = 100

	// DailyRounds is the fixed length of a daily challenge.
	DailyRounds = 5
)

// Options tweak free-play behavior. They have no effect in daily mode.
type Options struct {
	ShowTitle        bool
	ShowArtist       bool
	UnlimitedGuesses bool
}

// Game is the per-player session state.
type Game struct {
	ID         string
	Mode       Mode
	Options    Options
	Score      int
	Round      int
	DailySongs []Song
	Current    *Song
	Over       bool
}

// TotalRounds is how many rounds a daily game runs. A curated day can
// legally hold fewer than DailyRounds songs, in which case the game ends
// when the set runs out. Free play has no fixed length.
func (g *Game) TotalRounds() int {
	if g.Mode != ModeDaily {
		return 0
	}
	if n := len(g.DailySongs); n > 0 && n < DailyRounds {
		return n
	}
	return DailyRounds
}

// GuessOutcome describes the effect of one year guess.
type GuessOutcome struct {
	Correct    bool
	Difference int
	ActualYear int
	Artist     string
	PointsLost int
	Score      int
	Round      int
	GameOver   bool

	// TryAgain is set in unlimited-guess free play when the guess missed:
	// the round does not advance and Hint says which way to adjust.
	TryAgain bool
	Hint     string
}

// ApplyGuess scores a year guess against the current song and advances the
// game. Each point of distance between guess and release year costs one
// point of score, floored at zero. In unlimited-guess free play a miss
// keeps the round open and returns a directional hint instead.
func (g *Game) ApplyGuess(guess int) (GuessOutcome, error) {
	if g.Current == nil {
		return GuessOutcome{}, ErrNoActiveSong
	}

	diff := guess - g.Current.Year
	if diff < 0 {
		diff = -diff
	}

	out := GuessOutcome{
		Correct:    diff == 0,
		Difference: diff,
		ActualYear: g.Current.Year,
		Artist:     g.Current.Artist,
	}

	if g.Mode == ModeFree && g.Options.UnlimitedGuesses && diff != 0 {
		out.TryAgain = true
		if guess > g.Current.Year {
			out.Hint = "too high"
		} else {
			out.Hint = "too low"
		}
		out.Score = g.Score
		out.Round = g.Round
		return out, nil
	}

	g.Score -= diff
	if g.Score < 0 {
		g.Score = 0
	}
	g.Round++
	g.Current = nil
	if g.Mode == ModeDaily && g.Round >= g.TotalRounds() {
		g.Over = true
	}

	out.PointsLost = diff
	out.Score = g.Score
	out.Round = g.Round
	out.GameOver = g.Over
	return out, nil
}
