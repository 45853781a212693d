package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/thomaskoefod/linkedintel/internal/report"
	"github.com/thomaskoefod/linkedintel/pkg/models"
)

type scoreItem struct {
	score models.RelationshipScore
}

func (i scoreItem) Title() string {
	return i.score.Name
}

func (i scoreItem) Description() string {
	return fmt.Sprintf("%s | %s | vouch %s | %+d | %s",
		i.score.Company, report.Percent(i.score.Strength), report.Score(i.score.VouchScore),
		i.score.ReciprocityBalance, i.score.Status)
}

func (i scoreItem) FilterValue() string {
	return i.score.Name + " " + i.score.Company
}

type opportunityItem struct {
	opp models.Opportunity
}

func (i opportunityItem) Title() string {
	return i.opp.Name
}

func (i opportunityItem) Description() string {
	return fmt.Sprintf("%s | %d days ago | %s", i.opp.Company, i.opp.DaysAgo, i.opp.Hook)
}

func (i opportunityItem) FilterValue() string {
	return i.opp.Name + " " + i.opp.Company
}

var (
	_ list.Item = scoreItem{}
	_ list.Item = opportunityItem{}
)
