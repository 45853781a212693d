package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomaskoefod/linkedintel/internal/analysis"
	"github.com/thomaskoefod/linkedintel/internal/export"
	"github.com/thomaskoefod/linkedintel/pkg/models"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleAnalyzer(t *testing.T) *analysis.Analyzer {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, export.WriteSample(dir))
	ds, err := export.ParseDir(dir, export.WithNow(now))
	require.NoError(t, err)
	return analysis.New(ds, analysis.WithNow(now))
}

func TestNetwork(t *testing.T) {
	a := sampleAnalyzer(t)
	ov, err := a.Overview(context.Background(), 15)
	require.NoError(t, err)

	md := Network(ov, now)

	assert.True(t, strings.HasPrefix(md, "# LinkedIn Network Intelligence Report\n"))
	assert.Contains(t, md, "**Generated**: 2025-06-01 12:00")
	assert.Contains(t, md, "| Total Connections | 10 |")
	assert.Contains(t, md, "## Warmest Relationships")
	assert.Contains(t, md, "## Reciprocity Ledger")
	assert.Contains(t, md, "## Conversation Resurrection Opportunities")
	assert.Contains(t, md, "| Mike Torres | Acme Corp | 0 | 14 | -14 |")
	assert.Contains(t, md, "## Action Items")
}

func TestNetwork_OmitsEmptyResurrections(t *testing.T) {
	ov := &analysis.Overview{}
	md := Network(ov, now)
	assert.NotContains(t, md, "Resurrection Opportunities")
	assert.Contains(t, md, "| Total Connections | 0 |")
}

func TestWarmPath(t *testing.T) {
	a := sampleAnalyzer(t)
	res, err := a.WarmPaths(context.Background(), "stripe")
	require.NoError(t, err)

	md := WarmPath(res, now)
	assert.Contains(t, md, "# Warm Path Discovery: stripe")
	assert.Contains(t, md, "| Sarah Chen | Stripe | Staff Engineer |")
	assert.NotContains(t, md, "No direct connections")
}

func TestWarmPath_NoMatch(t *testing.T) {
	md := WarmPath(analysis.WarmPathResult{Target: "Initech"}, now)
	assert.Contains(t, md, "No direct connections found at Initech.")
	assert.Contains(t, md, "### Suggestions:")
}

func TestResurrections(t *testing.T) {
	assert.Contains(t, Resurrections(nil), "No dormant threads")

	md := Resurrections([]models.Opportunity{{
		Name: "Sarah Chen", Company: "Stripe", DaysAgo: 168,
		LastMessageDate: time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
		Hook:            "Would love to catch up | soon",
	}})
	assert.Contains(t, md, `| Sarah Chen | Stripe | 2024-12-15 | 168 | Would love to catch up \| soon |`)
}

func TestPerson(t *testing.T) {
	last := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	md := Person(models.RelationshipScore{
		Name: "Sarah Chen", Company: "Stripe", Position: "Staff Engineer",
		Strength: 89.04, VouchScore: 44, ReciprocityBalance: 6,
		LastMeaningfulContact: &last, Status: models.StatusWarm,
	})
	assert.Contains(t, md, "# Sarah Chen")
	assert.Contains(t, md, "_Staff Engineer @ Stripe_")
	assert.Contains(t, md, "| Strength | 89.0% |")
	assert.Contains(t, md, "| Reciprocity | +6 |")
	assert.Contains(t, md, "| Last Contact | 2025-05-01 |")

	md = Person(models.RelationshipScore{Name: "No Job", Company: "Acme"})
	assert.Contains(t, md, "_Acme_")
	assert.Contains(t, md, "| Last Contact | N/A |")
}

func TestWarmPathFilename(t *testing.T) {
	assert.Equal(t, "warm_path_stripe.md", WarmPathFilename("Stripe"))
	assert.Equal(t, "warm_path_acme_corp.md", WarmPathFilename("Acme Corp"))
	assert.Equal(t, "warm_path_a_b.md", WarmPathFilename("../A/B"))
	assert.Equal(t, "warm_path_target.md", WarmPathFilename("   "))
}

func TestRender(t *testing.T) {
	out, err := Render("# Title\n\nSome *text*.", "notty", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "text")
}
