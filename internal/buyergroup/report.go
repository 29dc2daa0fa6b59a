package buyergroup

import (
	"fmt"
	"strings"
)

// BuildReport assembles the output contract for the report/spreadsheet
// collaborators: the company summary, the full enriched-person and
// buyer-group lists, ordered recommendation strings, and a markdown
// rendering of the whole analysis. Aside from generated_at the envelope is a
// pure function of the run result.
func BuildReport(cfg Config, result Result) ReportEnvelope {
	env := ReportEnvelope{
		Company:         buildSummary(result),
		EnrichedPeople:  result.People,
		BuyerGroups:     result.Groups,
		Recommendations: buildRecommendations(result),
		RunMetadata:     result.Metadata,
		GeneratedAt:     cfg.now(),
		Disclaimer:      Disclaimer,
	}
	env.ReportMarkdown = buildMarkdown(env)
	return env
}

func buildSummary(result Result) CompanySummary {
	s := CompanySummary{
		CompanyID:              result.Batch.CompanyID,
		CompanyName:            result.Batch.CompanyName,
		TotalEmployees:         len(result.People),
		DepartmentDistribution: map[Department]int{},
		GroupsByPriority:       map[Priority]int{},
	}
	for _, p := range result.People {
		s.DepartmentDistribution[p.Department]++
	}
	for _, g := range result.Groups {
		s.GroupsByPriority[g.Priority]++
		s.MeanCoverageScore += g.Metrics.CoverageScore
	}
	if len(result.Groups) > 0 {
		s.MeanCoverageScore /= float64(len(result.Groups))
	}
	if s.TotalEmployees > 0 {
		s.SalesPercentage = 100 * float64(s.DepartmentDistribution[DeptSales]) / float64(s.TotalEmployees)
		s.MarketingPercentage = 100 * float64(s.DepartmentDistribution[DeptMarketing]) / float64(s.TotalEmployees)
	}
	if s.MarketingPercentage > s.SalesPercentage {
		s.CompanyType = "Marketing-Led"
	} else {
		s.CompanyType = "Sales-Led"
	}
	return s
}

// buildRecommendations derives ordered, human-readable next steps from gaps
// in the buyer groups. Order is deterministic: per-group findings in group
// order, then company-wide findings.
func buildRecommendations(result Result) []string {
	var recs []string
	decisionMakerSeen := false
	for _, g := range result.Groups {
		if len(g.RoleBuckets[RoleDecisionMaker]) > 0 {
			decisionMakerSeen = true
		}
		if g.Priority == PriorityHigh {
			recs = append(recs, fmt.Sprintf(
				"Prioritize engagement with the %s group: total influence %.1f, mean decision power %.2f.",
				g.GroupingKey, g.Metrics.TotalInfluence, g.Metrics.MeanDecisionPower))
		}
		if len(g.RoleBuckets[RoleChampion]) == 0 {
			recs = append(recs, fmt.Sprintf(
				"No Champion identified in %s; cultivate an internal advocate before engaging.", g.GroupingKey))
		}
		if len(g.RoleBuckets[RoleBlocker]) > 0 {
			recs = append(recs, fmt.Sprintf(
				"%s contains %d potential blocker(s); plan mitigation early in the cycle.",
				g.GroupingKey, len(g.RoleBuckets[RoleBlocker])))
		}
	}
	if len(result.Groups) > 0 && !decisionMakerSeen {
		recs = append(recs, "No DecisionMaker identified anywhere in the account; open with executive-level outreach to locate one.")
	}
	summary := buildSummary(result)
	if summary.TotalEmployees > 0 && summary.SalesPercentage < 10 {
		recs = append(recs, "Very small sales team; expand the buyer group to include Marketing and Operations leadership.")
	}
	if result.Metadata.LowConfidenceCount > 0 {
		recs = append(recs, fmt.Sprintf(
			"%d of %d profiles were enriched at low confidence (no usable title); verify them manually before outreach.",
			result.Metadata.LowConfidenceCount, result.Metadata.PeopleEnriched))
	}
	return recs
}

func buildMarkdown(env ReportEnvelope) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Buyer Group Intelligence Report\n\n")
	fmt.Fprintf(&b, "- Company: %s\n", companyLabel(env.Company))
	fmt.Fprintf(&b, "- Generated: %s\n", env.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"))
	fmt.Fprintf(&b, "- Rules version: %s\n\n", env.RunMetadata.RulesVersion)
	fmt.Fprintf(&b, "%s\n\n", Disclaimer)

	fmt.Fprintf(&b, "## Company Overview\n\n")
	fmt.Fprintf(&b, "- Total employees analyzed: %d\n", env.Company.TotalEmployees)
	fmt.Fprintf(&b, "- Company type: %s (sales %.1f%%, marketing %.1f%%)\n", env.Company.CompanyType, env.Company.SalesPercentage, env.Company.MarketingPercentage)
	fmt.Fprintf(&b, "- Buyer groups identified: %d\n", len(env.BuyerGroups))
	fmt.Fprintf(&b, "- Mean coverage score: %.2f\n\n", env.Company.MeanCoverageScore)

	fmt.Fprintf(&b, "### Department Distribution\n\n")
	fmt.Fprintf(&b, "| Department | People |\n|------------|--------|\n")
	for _, dept := range Departments {
		if n := env.Company.DepartmentDistribution[dept]; n > 0 {
			fmt.Fprintf(&b, "| %s | %d |\n", dept, n)
		}
	}
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "## Buyer Groups\n\n")
	if len(env.BuyerGroups) == 0 {
		fmt.Fprintf(&b, "No buyer groups could be formed from this batch.\n\n")
	}
	for _, g := range env.BuyerGroups {
		fmt.Fprintf(&b, "### %s\n\n", g.GroupingKey)
		fmt.Fprintf(&b, "- Members: %d\n", len(g.MemberIDs))
		fmt.Fprintf(&b, "- Priority: `%s`\n", g.Priority)
		fmt.Fprintf(&b, "- Engagement strategy: `%s`\n", g.EngagementStrategy)
		fmt.Fprintf(&b, "- Total influence: %.1f | Mean decision power: %.2f | Mean flight risk: %.2f | Coverage: %.2f\n",
			g.Metrics.TotalInfluence, g.Metrics.MeanDecisionPower, g.Metrics.MeanFlightRisk, g.Metrics.CoverageScore)
		for _, role := range BuyerRoles {
			if ids := g.RoleBuckets[role]; len(ids) > 0 {
				fmt.Fprintf(&b, "- %s: %d\n", roleLabel(role), len(ids))
			}
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## People\n\n")
	fmt.Fprintf(&b, "| Name | Title | Department | Seniority | Role | Influence | Power | Confidence |\n")
	fmt.Fprintf(&b, "|------|-------|------------|-----------|------|-----------|-------|------------|\n")
	for _, p := range env.EnrichedPeople {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %.1f | %.2f | %.1f |\n",
			cell(p.FullName), cell(p.ResolvedTitle), p.Department, p.SeniorityTier,
			roleLabel(p.BuyerGroupRole), p.InfluenceScore, p.DecisionPower, p.EnrichmentConfidence)
	}
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "## Recommendations\n\n")
	if len(env.Recommendations) == 0 {
		fmt.Fprintf(&b, "No gaps identified.\n")
	}
	for i, r := range env.Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r)
	}
	return b.String()
}

func companyLabel(s CompanySummary) string {
	if s.CompanyName != "" {
		return fmt.Sprintf("%s (%s)", s.CompanyName, s.CompanyID)
	}
	return s.CompanyID
}

func roleLabel(r BuyerRole) string {
	switch r {
	case RoleDecisionMaker:
		return "Decision Makers"
	case RoleChampion:
		return "Champions"
	case RoleStakeholder:
		return "Stakeholders"
	case RoleBlocker:
		return "Blockers"
	case RoleIntroducer:
		return "Introducers"
	default:
		return string(r)
	}
}

// cell prepares text for a markdown table cell: strips newlines and escapes
// pipes that would break the column structure.
func cell(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	return strings.ReplaceAll(s, "|", "\\|")
}
