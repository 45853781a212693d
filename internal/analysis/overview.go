package analysis

import (
	"context"

	"github.com/thomaskoefod/linkedintel/pkg/models"
)

// Overview bundles every ranked view of the network from a single scoring pass.
type Overview struct {
	Summary       models.Summary
	Warmest       []models.RelationshipScore
	GoingCold     []models.RelationshipScore
	Advocates     []models.RelationshipScore
	TheyOwe       []models.RelationshipScore
	YouOwe        []models.RelationshipScore
	Resurrections []models.Opportunity
}

// Overview computes all views, each truncated to n entries (n <= 0: all).
// Summary counts are taken over the untruncated lists.
func (a *Analyzer) Overview(ctx context.Context, n int) (*Overview, error) {
	scores, err := a.Scores(ctx)
	if err != nil {
		return nil, err
	}
	res, err := a.Resurrections(ctx)
	if err != nil {
		return nil, err
	}

	cold := goingCold(scores, 0)
	theyOwe, youOwe := ledger(scores, 0)
	strong := 0
	for _, s := range scores {
		if s.VouchScore >= strongAdvocate {
			strong++
		}
	}

	a.log.Info("network analysed",
		"connections", len(scores),
		"going_cold", len(cold),
		"resurrections", len(res),
	)

	return &Overview{
		Summary: models.Summary{
			Connections:     len(a.ds.Connections),
			Messages:        len(a.ds.Messages),
			StrongAdvocates: strong,
			GoingCold:       len(cold),
			TheyOwe:         len(theyOwe),
			Resurrections:   len(res),
		},
		Warmest:       warmest(scores, n),
		GoingCold:     top(cold, n),
		Advocates:     advocates(scores, n),
		TheyOwe:       top(theyOwe, n),
		YouOwe:        top(youOwe, n),
		Resurrections: top(res, n),
	}, nil
}
