package buyergroup

import "strings"

// ClassifyDepartment maps a resolved title plus free-text biography to a
// department label. The cascade is ordered: the first group with a matching
// keyword wins, and no match yields Other.
func ClassifyDepartment(rules *RuleSet, title, biography string) Department {
	text := classifierText(title, biography)
	for _, rule := range rules.Departments {
		if rule.pattern.MatchString(text) {
			return rule.Department
		}
	}
	return DeptOther
}

// ClassifySeniority maps a resolved title to a seniority tier. Titles with no
// recognizable seniority vocabulary fall back to network-size thresholds.
func ClassifySeniority(cfg Config, rules *RuleSet, title string, connections, followers int) SeniorityTier {
	text := strings.ToLower(title)
	for _, rule := range rules.Seniority {
		if rule.pattern.MatchString(text) {
			return rule.Tier
		}
	}
	total := connections + followers
	switch {
	case total > cfg.SeniorNetworkMin:
		return TierSeniorLeadership
	case total > cfg.MidNetworkMin:
		return TierMidManagement
	default:
		return TierIndividual
	}
}

// ClassifyTeam finds a best-effort sub-team label within the chosen
// department's vocabulary, defaulting to General.
func ClassifyTeam(rules *RuleSet, dept Department, title string) string {
	text := strings.ToLower(title)
	for _, rule := range rules.Teams[dept] {
		if rule.pattern.MatchString(text) {
			return rule.Team
		}
	}
	return "General"
}

func classifierText(title, biography string) string {
	return strings.ToLower(strings.TrimSpace(title + " " + biography))
}
