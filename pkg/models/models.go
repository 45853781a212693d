package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// ShallowPhrases mark pleasantries that do not count as meaningful contact
// unless the message is long enough to carry something else.
var ShallowPhrases = []string{
	"congrats",
	"congratulations",
	"thanks",
	"thank you",
	"happy birthday",
	"great post",
	"interesting",
}

const (
	deepMinLength    = 100
	shallowMaxLength = 150
)

type Connection struct {
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email,omitempty"`
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	ConnectedOn time.Time `json:"connected_on"`
}

// FullName is the join key used across every table of the export.
func (c Connection) FullName() string {
	return c.FirstName + " " + c.LastName
}

type Message struct {
	ConversationID string    `json:"conversation_id,omitempty"`
	From           string    `json:"from"`
	To             string    `json:"to"`
	Date           time.Time `json:"date"`
	Content        string    `json:"content"`
}

// IsDeep reports whether the message is substantive rather than a pleasantry.
func (m Message) IsDeep() bool {
	n := utf8.RuneCountInString(m.Content)
	if n < deepMinLength {
		return false
	}
	if n >= shallowMaxLength {
		return true
	}
	return !ContainsAny(m.Content, ShallowPhrases)
}

type Endorsement struct {
	Name  string    `json:"name"`
	Skill string    `json:"skill"`
	Date  time.Time `json:"date"`
}

type Recommendation struct {
	Name string    `json:"name"`
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

// Dataset holds every collection read from one export.
type Dataset struct {
	Connections             []Connection     `json:"connections"`
	Messages                []Message        `json:"messages"`
	EndorsementsReceived    []Endorsement    `json:"endorsements_received"`
	EndorsementsGiven       []Endorsement    `json:"endorsements_given"`
	RecommendationsReceived []Recommendation `json:"recommendations_received"`
	RecommendationsGiven    []Recommendation `json:"recommendations_given"`
}

// ContainsAny does a case-insensitive substring match against phrases.
func ContainsAny(s string, phrases []string) bool {
	lower := strings.ToLower(s)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
