// Package report renders analysis results as markdown documents.
package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/thomaskoefod/linkedintel/internal/analysis"
	"github.com/thomaskoefod/linkedintel/pkg/models"
)

const (
	NetworkFilename = "network_intelligence_report.md"

	// Rows per table in the full report.
	tableRows   = 10
	ledgerRows  = 8
	hookRunes   = 50
	strongVouch = 80.0
	dateFormat  = "2006-01-02"
	stampFormat = "2006-01-02 15:04"
)

var unsafeFilename = regexp.MustCompile(`[^a-z0-9]+`)

// WarmPathFilename names the file a warm path report for target is saved as.
func WarmPathFilename(target string) string {
	slug := strings.Trim(unsafeFilename.ReplaceAllString(strings.ToLower(target), "_"), "_")
	if slug == "" {
		slug = "target"
	}
	return "warm_path_" + slug + ".md"
}

// Network renders the full relationship report.
func Network(ov *analysis.Overview, generated time.Time) string {
	var s strings.Builder

	s.WriteString("# LinkedIn Network Intelligence Report\n")
	fmt.Fprintf(&s, "**Generated**: %s\n", generated.Format(stampFormat))
	fmt.Fprintf(&s, "**Connections Analyzed**: %d\n", ov.Summary.Connections)
	fmt.Fprintf(&s, "**Messages Analyzed**: %d\n\n---\n\n", ov.Summary.Messages)

	s.WriteString("## Executive Summary\n\n")
	s.WriteString("| Metric | Count |\n|--------|-------|\n")
	fmt.Fprintf(&s, "| Total Connections | %d |\n", ov.Summary.Connections)
	fmt.Fprintf(&s, "| Strong Advocates (%.0f+ vouch) | %d |\n", strongVouch, ov.Summary.StrongAdvocates)
	fmt.Fprintf(&s, "| Going Cold (need attention) | %d |\n", ov.Summary.GoingCold)
	fmt.Fprintf(&s, "| People Who Owe You Favors | %d |\n", ov.Summary.TheyOwe)
	fmt.Fprintf(&s, "| Conversations to Resurrect | %d |\n", ov.Summary.Resurrections)

	s.WriteString("\n---\n\n## Warmest Relationships\n\n")
	s.WriteString("These connections have the strongest current relationship strength.\n\n")
	s.WriteString("| Name | Company | Strength | Last Contact | Messages |\n")
	s.WriteString("|------|---------|----------|--------------|----------|\n")
	for _, r := range head(ov.Warmest, tableRows) {
		fmt.Fprintf(&s, "| %s | %s | %s | %s | %d |\n",
			cell(r.Name), cell(r.Company), Percent(r.Strength), lastContact(r), r.MessagesExchanged)
	}

	s.WriteString("\n---\n\n## Going Cold (Action Needed)\n\n")
	s.WriteString("These valuable relationships are fading. Re-engage now.\n\n")
	s.WriteString("| Name | Company | Strength | Days Since | Vouch Score |\n")
	s.WriteString("|------|---------|----------|------------|-------------|\n")
	for _, r := range head(ov.GoingCold, tableRows) {
		fmt.Fprintf(&s, "| %s | %s | %s | %d | %s |\n",
			cell(r.Name), cell(r.Company), Percent(r.Strength), r.DaysSinceContact, Score(r.VouchScore))
	}

	s.WriteString("\n---\n\n## Top Advocates (High Vouch Score)\n\n")
	s.WriteString("These people would most likely advocate for you if asked.\n\n")
	s.WriteString("| Name | Company | Vouch Score | Recommendations | Messages |\n")
	s.WriteString("|------|---------|-------------|-----------------|----------|\n")
	for _, r := range head(ov.Advocates, tableRows) {
		fmt.Fprintf(&s, "| %s | %s | %s | %d received | %d |\n",
			cell(r.Name), cell(r.Company), Score(r.VouchScore), r.RecommendationsReceived, r.MessagesExchanged)
	}

	s.WriteString("\n---\n\n## Reciprocity Ledger\n\n")
	s.WriteString("### They Owe You (Safe to Ask for Help)\n\n")
	writeLedger(&s, ov.TheyOwe)
	s.WriteString("\n### You Owe Them (Consider Helping)\n\n")
	writeLedger(&s, ov.YouOwe)

	if len(ov.Resurrections) > 0 {
		s.WriteString("\n---\n\n## Conversation Resurrection Opportunities\n\n")
		s.WriteString("Dormant threads with natural re-engagement hooks.\n\n")
		s.WriteString("| Name | Company | Days Ago | Hook |\n|------|---------|----------|------|\n")
		for _, o := range head(ov.Resurrections, tableRows) {
			fmt.Fprintf(&s, "| %s | %s | %d | %s |\n",
				cell(o.Name), cell(o.Company), o.DaysAgo, cell(analysis.Preview(o.Hook, hookRunes)))
		}
	}

	s.WriteString("\n---\n\n## Action Items\n\n")
	s.WriteString("### This Week\n")
	s.WriteString("1. Re-engage top 3 \"Going Cold\" relationships\n")
	s.WriteString("2. Ask 1 person from \"They Owe You\" for a favor/intro\n")
	s.WriteString("3. Help 1 person from \"You Owe Them\" proactively\n\n")
	s.WriteString("### This Month\n")
	s.WriteString("- Resurrect 5 dormant conversations\n")
	s.WriteString("- Schedule catch-ups with top advocates\n")
	s.WriteString("- Audit and update reciprocity balance\n")

	return s.String()
}

func writeLedger(s *strings.Builder, scores []models.RelationshipScore) {
	s.WriteString("| Name | Company | Points Given | Points Received | Balance |\n")
	s.WriteString("|------|---------|--------------|-----------------|---------|\n")
	for _, r := range head(scores, ledgerRows) {
		fmt.Fprintf(s, "| %s | %s | %d | %d | %+d |\n",
			cell(r.Name), cell(r.Company), r.PointsGiven(), r.PointsReceived(), r.ReciprocityBalance)
	}
}

// WarmPath renders the introduction routes into a target company.
func WarmPath(res analysis.WarmPathResult, generated time.Time) string {
	var s strings.Builder

	fmt.Fprintf(&s, "# Warm Path Discovery: %s\n", res.Target)
	fmt.Fprintf(&s, "**Generated**: %s\n\n---\n\n", generated.Format(stampFormat))
	fmt.Fprintf(&s, "## Direct Connections at %s\n\n", res.Target)

	if !res.Found() {
		fmt.Fprintf(&s, "No direct connections found at %s.\n\n", res.Target)
		s.WriteString("### Suggestions:\n")
		s.WriteString("- Search for connections at competitor/partner companies\n")
		s.WriteString("- Look for 2nd-degree connections via your strongest advocates\n")
		s.WriteString("- Check for alumni connections from same schools\n")
		return s.String()
	}

	s.WriteString("| Name | Company | Position | Warmth | Vouch | Approach |\n")
	s.WriteString("|------|---------|----------|--------|-------|----------|\n")
	for _, p := range res.Paths {
		fmt.Fprintf(&s, "| %s | %s | %s | %s | %s | %s |\n",
			cell(p.Score.Name), cell(p.Score.Company), cell(p.Score.Position),
			Percent(p.Score.Strength), Score(p.Score.VouchScore), p.Approach.Label())
	}
	return s.String()
}

// Resurrections renders the opportunity list on its own.
func Resurrections(opps []models.Opportunity) string {
	var s strings.Builder
	s.WriteString("# Conversation Resurrection Opportunities\n\n")
	if len(opps) == 0 {
		s.WriteString("No dormant threads with a promised catch-up were found.\n")
		return s.String()
	}
	s.WriteString("| Name | Company | Last Message | Days Ago | Hook |\n")
	s.WriteString("|------|---------|--------------|----------|------|\n")
	for _, o := range opps {
		fmt.Fprintf(&s, "| %s | %s | %s | %d | %s |\n",
			cell(o.Name), cell(o.Company), o.LastMessageDate.Format(dateFormat), o.DaysAgo, cell(o.Hook))
	}
	return s.String()
}

// Person renders a single relationship card.
func Person(r models.RelationshipScore) string {
	var s strings.Builder
	fmt.Fprintf(&s, "# %s\n\n", r.Name)
	if r.Position != "" || r.Company != "" {
		fmt.Fprintf(&s, "_%s_\n\n", strings.Trim(r.Position+" @ "+r.Company, " @"))
	}
	s.WriteString("| Signal | Value |\n|--------|-------|\n")
	fmt.Fprintf(&s, "| Status | %s |\n", r.Status)
	fmt.Fprintf(&s, "| Strength | %s |\n", Percent(r.Strength))
	fmt.Fprintf(&s, "| Vouch Score | %s |\n", Score(r.VouchScore))
	fmt.Fprintf(&s, "| Reciprocity | %+d |\n", r.ReciprocityBalance)
	fmt.Fprintf(&s, "| Last Contact | %s |\n", lastContact(r))
	fmt.Fprintf(&s, "| Days Since Contact | %d |\n", r.DaysSinceContact)
	fmt.Fprintf(&s, "| Messages | %d (%d deep) |\n", r.MessagesExchanged, r.DeepMessages)
	fmt.Fprintf(&s, "| Recommendations | %d given / %d received |\n", r.RecommendationsGiven, r.RecommendationsReceived)
	fmt.Fprintf(&s, "| Endorsements | %d given / %d received |\n", r.EndorsementsGiven, r.EndorsementsReceived)
	return s.String()
}

// Render formats markdown for a terminal.
func Render(markdown, style string, width int) (string, error) {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// Percent formats a strength value the way every report shows it.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func Score(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func lastContact(r models.RelationshipScore) string {
	if r.LastMeaningfulContact == nil {
		return "N/A"
	}
	return r.LastMeaningfulContact.Format(dateFormat)
}

// cell keeps free text from breaking a markdown table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
