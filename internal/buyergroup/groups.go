package buyergroup

import (
	"fmt"
	"strings"
)

// BuildGroups partitions enriched people into buyer groups by department.
// Departments below the minimum viable size are not emitted on their own;
// their members fold into a single company-wide fallback group, which handles
// the common small-company case of a lone salesperson or one-person marketing
// team. Every person lands in exactly one group.
func BuildGroups(cfg Config, companyID string, people []EnrichedPerson) ([]BuyerGroup, error) {
	byDept := make(map[Department][]EnrichedPerson, len(Departments))
	for _, p := range people {
		byDept[p.Department] = append(byDept[p.Department], p)
	}

	var groups []BuyerGroup
	var fallback []EnrichedPerson
	for _, dept := range Departments {
		members := byDept[dept]
		if len(members) == 0 {
			continue
		}
		if len(members) < cfg.MinGroupSize {
			fallback = append(fallback, members...)
			continue
		}
		g, err := buildGroup(cfg, companyID, string(dept), members)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if len(fallback) > 0 {
		g, err := buildGroup(cfg, companyID, CompanyWideKey, fallback)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func buildGroup(cfg Config, companyID, key string, members []EnrichedPerson) (BuyerGroup, error) {
	// A zero-member group means the partitioning above is broken, not that
	// the input was unusual.
	if len(members) == 0 {
		return BuyerGroup{}, fmt.Errorf("buyer group %q for company %q has no members", key, companyID)
	}

	g := BuyerGroup{
		ID:          groupID(companyID, key),
		CompanyID:   companyID,
		GroupingKey: key,
		RoleBuckets: map[BuyerRole][]string{},
	}
	covered := 0
	for _, m := range members {
		g.MemberIDs = append(g.MemberIDs, m.ID)
		g.RoleBuckets[m.BuyerGroupRole] = append(g.RoleBuckets[m.BuyerGroupRole], m.ID)
		g.Metrics.TotalInfluence += m.InfluenceScore
		g.Metrics.MeanDecisionPower += m.DecisionPower
		g.Metrics.MeanFlightRisk += m.FlightRisk
		if m.BuyerGroupRole == RoleDecisionMaker || m.BuyerGroupRole == RoleChampion {
			covered++
		}
	}
	n := float64(len(members))
	g.Metrics.MeanDecisionPower /= n
	g.Metrics.MeanFlightRisk /= n
	g.Metrics.CoverageScore = float64(covered) / n
	g.EngagementStrategy = pickStrategy(g.RoleBuckets)
	g.Priority = pickPriority(cfg, g.Metrics)
	return g, nil
}

// pickStrategy selects the engagement approach by role precedence: a present
// decision maker beats everything, then a champion, then blockers to defuse,
// and failing all three the group is worked by consensus.
func pickStrategy(buckets map[BuyerRole][]string) EngagementStrategy {
	switch {
	case len(buckets[RoleDecisionMaker]) > 0:
		return StrategyExecutiveSponsor
	case len(buckets[RoleChampion]) > 0:
		return StrategyChampionLed
	case len(buckets[RoleBlocker]) > 0:
		return StrategyBlockerMitigation
	default:
		return StrategyStakeholderConsensus
	}
}

func pickPriority(cfg Config, m GroupMetrics) Priority {
	switch {
	case m.TotalInfluence > cfg.PriorityHighInfluence && m.MeanDecisionPower > cfg.PriorityHighPower:
		return PriorityHigh
	case m.TotalInfluence > cfg.PriorityMediumInfluence && m.MeanDecisionPower > cfg.PriorityMediumPower:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// groupID builds a stable, human-scannable identifier like
// "acme_sales_revenue_operations_bg".
func groupID(companyID, key string) string {
	return slug(companyID) + "_" + slug(key) + "_bg"
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
