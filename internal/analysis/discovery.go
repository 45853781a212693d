package analysis

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/thomaskoefod/linkedintel/pkg/models"
)

// CatchUpPhrases signal a promised follow-up that never happened.
var CatchUpPhrases = []string{
	"catch up",
	"grab coffee",
	"get together",
	"happy to help",
	"let me know",
	"would love to",
}

const (
	// Threads younger than this are not dormant yet.
	dormantAfterDays = 90
	hookLength       = 100

	directAskAbove   = 150.0
	warmRequestAbove = 100.0
)

// ClassifyApproach maps a combined strength+vouch value to one of three tiers.
func ClassifyApproach(combined float64) models.Approach {
	switch {
	case combined > directAskAbove:
		return models.ApproachDirectAsk
	case combined > warmRequestAbove:
		return models.ApproachWarmRequest
	default:
		return models.ApproachReengageFirst
	}
}

type WarmPathResult struct {
	Target string
	Paths  []models.WarmPath
}

// Found reports whether any connection works at the target.
func (r WarmPathResult) Found() bool { return len(r.Paths) > 0 }

// WarmPaths lists connections whose company contains target, warmest first.
// A blank target matches nothing.
func (a *Analyzer) WarmPaths(ctx context.Context, target string) (WarmPathResult, error) {
	res := WarmPathResult{Target: target}
	needle := strings.ToLower(strings.TrimSpace(target))
	if needle == "" {
		return res, nil
	}

	scores, err := a.Scores(ctx)
	if err != nil {
		return res, err
	}
	for _, s := range scores {
		if !strings.Contains(strings.ToLower(s.Company), needle) {
			continue
		}
		combined := s.Warmth()
		res.Paths = append(res.Paths, models.WarmPath{
			Score:    s,
			Combined: combined,
			Approach: ClassifyApproach(combined),
		})
	}
	slices.SortStableFunc(res.Paths, func(x, y models.WarmPath) int {
		return cmp.Compare(y.Combined, x.Combined)
	})

	a.log.Debug("warm path search", "target", target, "matches", len(res.Paths))
	return res, nil
}

// Resurrections finds, per connection, the first message older than 90 days
// that promised a catch-up, most recent first.
func (a *Analyzer) Resurrections(ctx context.Context) ([]models.Opportunity, error) {
	var out []models.Opportunity
	for _, c := range a.ds.Connections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := c.FullName()
		for _, m := range a.idx.Messages(name) {
			days := DaysBetween(m.Date, a.now)
			if days <= dormantAfterDays || !models.ContainsAny(m.Content, CatchUpPhrases) {
				continue
			}
			out = append(out, models.Opportunity{
				Name:            name,
				Company:         c.Company,
				LastMessageDate: m.Date,
				DaysAgo:         days,
				Hook:            Preview(m.Content, hookLength),
				Kind:            models.OpportunityCatchUp,
			})
			break
		}
	}
	slices.SortStableFunc(out, func(x, y models.Opportunity) int {
		return cmp.Compare(x.DaysAgo, y.DaysAgo)
	})
	return top(out, a.resurrectionLimit), nil
}

// Preview truncates s to n runes, marking the cut with an ellipsis.
func Preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}
