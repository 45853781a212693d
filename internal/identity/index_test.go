package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomaskoefod/linkedintel/pkg/models"
)

func testDataset() *models.Dataset {
	return &models.Dataset{
		Messages: []models.Message{
			{ConversationID: "1", From: "Sarah Chen", To: "Me", Content: "first"},
			{ConversationID: "1", From: "Me", To: "SARAH CHEN", Content: "second"},
			{ConversationID: "2", From: "Mike Torres", To: "Me", Content: "third"},
			{ConversationID: "3", From: "Sarah Chen", To: "Mike Torres", Content: "group"},
		},
		EndorsementsReceived: []models.Endorsement{
			{Name: "Sarah Chen", Skill: "Go"},
			{Name: "sarah chen", Skill: "SQL"},
		},
		EndorsementsGiven: []models.Endorsement{
			{Name: "Mike Torres", Skill: "Leadership"},
		},
		RecommendationsReceived: []models.Recommendation{
			{Name: "Mike Torres"},
		},
		RecommendationsGiven: []models.Recommendation{
			{Name: "Sarah Chen"},
			{Name: "Sarah Chen"},
		},
	}
}

func TestBuild_MessagesByPerson(t *testing.T) {
	idx := Build(testDataset(), "Me", nil)

	sarah := idx.Messages("sarah chen")
	require.Len(t, sarah, 3)
	assert.Equal(t, "first", sarah[0].Content)
	assert.Equal(t, "second", sarah[1].Content)
	assert.Equal(t, "group", sarah[2].Content)

	assert.Len(t, idx.Messages("Mike Torres"), 2)
	assert.Empty(t, idx.Messages("Me"), "self is never indexed")
	assert.Empty(t, idx.Messages("Nobody"))
}

func TestBuild_Counts(t *testing.T) {
	idx := Build(testDataset(), "Me", nil)

	assert.Equal(t, Counts{EndorsementsReceived: 2, RecommendationsGiven: 2}, idx.Counts("Sarah Chen"))
	assert.Equal(t, Counts{EndorsementsGiven: 1, RecommendationsReceived: 1}, idx.Counts("  mike torres "))
	assert.Equal(t, Counts{}, idx.Counts("Nobody"))
}

func TestBuild_SelfIsParameter(t *testing.T) {
	ds := &models.Dataset{Messages: []models.Message{
		{From: "Ada Lovelace", To: "Charles Babbage", Content: "engine"},
	}}

	idx := Build(ds, "Ada Lovelace", nil)
	assert.True(t, idx.IsSelf("ada lovelace"))
	assert.Empty(t, idx.Messages("Ada Lovelace"))
	assert.Len(t, idx.Messages("Charles Babbage"), 1)
}

func TestBuild_SelfAddressedIndexedOnce(t *testing.T) {
	ds := &models.Dataset{Messages: []models.Message{
		{From: "Sarah Chen", To: "sarah chen", Content: "note to self"},
	}}
	idx := Build(ds, "Me", nil)
	assert.Len(t, idx.Messages("Sarah Chen"), 1)
}

func TestBuild_NilDataset(t *testing.T) {
	idx := Build(nil, "Me", nil)
	assert.Empty(t, idx.Messages("anyone"))
	assert.Equal(t, Counts{}, idx.Counts("anyone"))
}

type lastNameResolver struct{}

func (lastNameResolver) Key(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func TestBuild_CustomResolver(t *testing.T) {
	ds := &models.Dataset{
		EndorsementsReceived: []models.Endorsement{{Name: "S. Chen"}, {Name: "Sarah Chen"}},
	}
	idx := Build(ds, "Me", lastNameResolver{})
	assert.Equal(t, 2, idx.Counts("Dr Chen").EndorsementsReceived)
	assert.Equal(t, "chen", idx.Key("Sarah Chen"))
}
