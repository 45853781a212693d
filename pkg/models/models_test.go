package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionFullName(t *testing.T) {
	c := Connection{FirstName: "Sarah", LastName: "Chen"}
	assert.Equal(t, "Sarah Chen", c.FullName())
}

func TestMessageIsDeep(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"short", "Let's catch up soon!", false},
		{"long substantive", strings.Repeat("a", 100), true},
		{"long shallow under 150", "Thanks " + strings.Repeat("x", 100), false},
		{"shallow but very long", "Congratulations " + strings.Repeat("x", 140), true},
		{"shallow phrase case insensitive", "GREAT POST " + strings.Repeat("x", 100), false},
		{"counts runes not bytes", strings.Repeat("é", 99), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message{Content: tt.content}.IsDeep())
		})
	}
}

func TestRelationshipScorePoints(t *testing.T) {
	s := RelationshipScore{
		RecommendationsGiven:    1,
		EndorsementsGiven:       3,
		RecommendationsReceived: 2,
		EndorsementsReceived:    1,
	}
	assert.Equal(t, 16, s.PointsGiven())
	assert.Equal(t, 22, s.PointsReceived())
}

func TestApproachLabel(t *testing.T) {
	assert.Equal(t, "Direct ask - strong relationship", ApproachDirectAsk.Label())
	assert.Equal(t, "Warm request after catch-up", ApproachWarmRequest.Label())
	assert.Equal(t, "Re-engage first, then ask", ApproachReengageFirst.Label())
}
