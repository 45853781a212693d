package models

import "time"

type Status string

const (
	StatusWarm    Status = "warm"
	StatusCold    Status = "cold"
	StatusDormant Status = "dormant"
)

// Ledger weights for the reciprocity balance.
const (
	RecommendationPoints = 10
	EndorsementPoints    = 2
)

type RelationshipScore struct {
	Name                    string     `json:"name"`
	Company                 string     `json:"company"`
	Position                string     `json:"position"`
	Strength                float64    `json:"strength"`
	VouchScore              float64    `json:"vouch_score"`
	ReciprocityBalance      int        `json:"reciprocity_balance"`
	LastMeaningfulContact   *time.Time `json:"last_meaningful_contact,omitempty"`
	DaysSinceContact        int        `json:"days_since_contact"`
	MessagesExchanged       int        `json:"messages_exchanged"`
	DeepMessages            int        `json:"deep_messages"`
	RecommendationsGiven    int        `json:"recommendations_given"`
	RecommendationsReceived int        `json:"recommendations_received"`
	EndorsementsGiven       int        `json:"endorsements_given"`
	EndorsementsReceived    int        `json:"endorsements_received"`
	Status                  Status     `json:"status"`
}

// PointsGiven is the goodwill the user has invested in this contact.
func (s RelationshipScore) PointsGiven() int {
	return s.RecommendationsGiven*RecommendationPoints + s.EndorsementsGiven*EndorsementPoints
}

// PointsReceived is the goodwill this contact has invested in the user.
func (s RelationshipScore) PointsReceived() int {
	return s.RecommendationsReceived*RecommendationPoints + s.EndorsementsReceived*EndorsementPoints
}

// Warmth is the combined value used to rank warm paths.
func (s RelationshipScore) Warmth() float64 {
	return s.Strength + s.VouchScore
}

type Approach string

const (
	ApproachDirectAsk     Approach = "direct_ask"
	ApproachWarmRequest   Approach = "warm_request"
	ApproachReengageFirst Approach = "reengage_first"
)

// Label returns the advice shown next to a warm path.
func (a Approach) Label() string {
	switch a {
	case ApproachDirectAsk:
		return "Direct ask - strong relationship"
	case ApproachWarmRequest:
		return "Warm request after catch-up"
	default:
		return "Re-engage first, then ask"
	}
}

type WarmPath struct {
	Score    RelationshipScore `json:"score"`
	Combined float64           `json:"combined"`
	Approach Approach          `json:"approach"`
}

const OpportunityCatchUp = "catch_up_promised"

type Opportunity struct {
	Name            string    `json:"name"`
	Company         string    `json:"company"`
	LastMessageDate time.Time `json:"last_message_date"`
	DaysAgo         int       `json:"days_ago"`
	Hook            string    `json:"hook"`
	Kind            string    `json:"kind"`
}

type Summary struct {
	Connections     int `json:"connections"`
	Messages        int `json:"messages"`
	StrongAdvocates int `json:"strong_advocates"`
	GoingCold       int `json:"going_cold"`
	TheyOwe         int `json:"they_owe"`
	Resurrections   int `json:"resurrections"`
}
