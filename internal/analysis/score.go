package analysis

import (
	"math"
	"time"

	"github.com/thomaskoefod/linkedintel/internal/identity"
	"github.com/thomaskoefod/linkedintel/pkg/models"
)

// DefaultHalfLifeDays is the time it takes a relationship to lose half its
// strength without meaningful contact.
const DefaultHalfLifeDays = 180

const (
	warmAbove = 50.0
	coldAbove = 20.0
	maxVouch  = 100.0
)

// DaysBetween returns whole days elapsed from then to now, never negative.
func DaysBetween(then, now time.Time) int {
	d := math.Floor(now.Sub(then).Hours() / 24)
	if d < 0 {
		return 0
	}
	return int(d)
}

// Strength decays from 100 by half every halfLife days.
func Strength(days int, halfLife float64) float64 {
	if halfLife <= 0 {
		halfLife = DefaultHalfLifeDays
	}
	return 100 * math.Pow(0.5, float64(days)/halfLife)
}

func StatusFor(strength float64) models.Status {
	switch {
	case strength > warmAbove:
		return models.StatusWarm
	case strength > coldAbove:
		return models.StatusCold
	default:
		return models.StatusDormant
	}
}

// VouchInputs are the signals the vouch score is built from.
type VouchInputs struct {
	Messages                int
	DeepMessages            int
	DaysSince               int
	RecommendationsReceived int
	RecommendationsGiven    int
	EndorsementsReceived    int
}

// VouchScore estimates, from 0 to 100, how likely a contact is to advocate
// for the user.
func VouchScore(in VouchInputs) float64 {
	score := 0.0

	switch {
	case in.Messages == 0:
	case in.DeepMessages == 0:
		score += 5
	case in.DeepMessages < 5:
		score += 15
	default:
		score += 30
	}

	switch {
	case in.DaysSince > 730:
	case in.DaysSince > 365:
		score += 5
	case in.DaysSince > 180:
		score += 10
	default:
		score += 20
	}

	// A received recommendation outranks one the user gave; they never stack.
	if in.RecommendationsReceived > 0 {
		score += 30
	} else if in.RecommendationsGiven > 0 {
		score += 10
	}
	score += math.Min(float64(in.EndorsementsReceived*2), 10)

	switch {
	case in.Messages > 20:
		score += 10
	case in.Messages > 10:
		score += 5
	}

	return math.Min(score, maxVouch)
}

// Reciprocity is positive when the user has given more than received.
func Reciprocity(c identity.Counts) int {
	given := c.RecommendationsGiven*models.RecommendationPoints + c.EndorsementsGiven*models.EndorsementPoints
	received := c.RecommendationsReceived*models.RecommendationPoints + c.EndorsementsReceived*models.EndorsementPoints
	return given - received
}

func (a *Analyzer) score(c models.Connection) models.RelationshipScore {
	name := c.FullName()
	msgs := a.idx.Messages(name)

	var lastAny, lastDeep time.Time
	deep := 0
	for i, m := range msgs {
		if i == 0 || m.Date.After(lastAny) {
			lastAny = m.Date
		}
		if m.IsDeep() {
			if deep == 0 || m.Date.After(lastDeep) {
				lastDeep = m.Date
			}
			deep++
		}
	}

	last := c.ConnectedOn
	var lastContact *time.Time
	switch {
	case deep > 0:
		last = lastDeep
	case len(msgs) > 0:
		last = lastAny
	}
	if len(msgs) > 0 {
		lc := last
		lastContact = &lc
	}

	days := DaysBetween(last, a.now)
	strength := Strength(days, a.halfLife)
	counts := a.idx.Counts(name)

	return models.RelationshipScore{
		Name:                  name,
		Company:               c.Company,
		Position:              c.Position,
		Strength:              strength,
		ReciprocityBalance:    Reciprocity(counts),
		LastMeaningfulContact: lastContact,
		DaysSinceContact:      days,
		MessagesExchanged:     len(msgs),
		DeepMessages:          deep,
		VouchScore: VouchScore(VouchInputs{
			Messages:                len(msgs),
			DeepMessages:            deep,
			DaysSince:               days,
			RecommendationsReceived: counts.RecommendationsReceived,
			RecommendationsGiven:    counts.RecommendationsGiven,
			EndorsementsReceived:    counts.EndorsementsReceived,
		}),
		RecommendationsGiven:    counts.RecommendationsGiven,
		RecommendationsReceived: counts.RecommendationsReceived,
		EndorsementsGiven:       counts.EndorsementsGiven,
		EndorsementsReceived:    counts.EndorsementsReceived,
		Status:                  StatusFor(strength),
	}
}
