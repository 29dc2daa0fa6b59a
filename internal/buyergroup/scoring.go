package buyergroup

import "strings"

// DecisionPower scores how much purchasing authority a title carries, in
// [0,1]. A title-tier increment (chief-level largest, manager-level smallest)
// is summed with a department increment and capped at 1.0.
func DecisionPower(rules *RuleSet, title string, dept Department) float64 {
	power := 0.0
	text := strings.ToLower(title)
	for _, tier := range rules.TitleTiers {
		if tier.pattern.MatchString(text) {
			power += tier.Increment
			break
		}
	}
	if inc, ok := rules.DepartmentPower[dept]; ok {
		power += inc
	} else {
		power += rules.DepartmentPower[DeptOther]
	}
	if power > 1.0 {
		power = 1.0
	}
	return power
}

// InfluenceScore estimates reach inside and outside the company. Each
// component is capped before summing so one extreme input (a scraped
// connections count in the millions, say) cannot dominate the total and
// scores stay comparable across people.
func InfluenceScore(cfg Config, rules *RuleSet, p PersonRecord, tier SeniorityTier) float64 {
	network := float64(p.ConnectionsCount+p.FollowersCount) / cfg.NetworkDivisor
	if network > cfg.NetworkScoreCap {
		network = cfg.NetworkScoreCap
	}
	recBonus := float64(p.RecommendationsCount) * cfg.RecommendationUnit
	if recBonus > cfg.RecommendationCap {
		recBonus = cfg.RecommendationCap
	}
	return network + recBonus + rules.SeniorityBonus[tier]
}

// FlightRisk estimates attrition likelihood in [0,1]. Starts at a neutral
// baseline, rises for historically higher-turnover departments, and rises
// again when the profile shows no activity signal at all.
func FlightRisk(cfg Config, rules *RuleSet, p PersonRecord, dept Department) float64 {
	risk := cfg.FlightRiskBaseline
	if rules.HighTurnoverDepartments[dept] {
		risk += cfg.HighTurnoverIncrement
	}
	if !hasActivitySignal(p) {
		risk += cfg.NoActivityIncrement
	}
	if risk > 1.0 {
		risk = 1.0
	}
	return risk
}

// hasActivitySignal reports whether the profile shows any sign of recent
// engagement. Recommendations and a written biography are the only signals
// present in materialized batches.
func hasActivitySignal(p PersonRecord) bool {
	return p.RecommendationsCount > 0 || strings.TrimSpace(p.Biography) != ""
}
