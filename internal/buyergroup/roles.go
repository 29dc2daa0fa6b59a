package buyergroup

// AssignRole classifies one enriched person into exactly one buyer-group
// role. The rules are evaluated in precedence order and the final branch is
// unconditional, so every input combination receives a role.
//
// Historical analysis runs disagreed on the decision-maker and champion cut
// points; both surviving conditions are kept as alternatives and every
// threshold comes from Config.
func AssignRole(cfg Config, tier SeniorityTier, dept Department, decisionPower, influence float64) BuyerRole {
	// Decision makers: executive tier with real authority, whether that shows
	// up as decision power or as outsized influence.
	if tier == TierExecutive && (decisionPower >= cfg.DecisionMakerPowerMin || influence >= cfg.DecisionMakerInfluenceMin) {
		return RoleDecisionMaker
	}

	// Champions: influential leadership, high-influence members of the
	// departments that own the buying motion, or anyone whose decision power
	// clears the champion bar.
	leadership := tier == TierExecutive || tier == TierSeniorLeadership
	buyingDept := dept == DeptSales || dept == DeptMarketing
	if (leadership && influence >= cfg.ChampionInfluenceMin) ||
		(buyingDept && influence >= cfg.ChampionDeptInfluenceMin) ||
		decisionPower >= cfg.ChampionPowerMin {
		return RoleChampion
	}

	// Blockers: the departments that gate purchases, plus unclassifiable
	// people with no influence to bring to the table.
	if dept == DeptFinance || (dept == DeptOther && influence < cfg.BlockerInfluenceMax) {
		return RoleBlocker
	}

	// Stakeholders: management with enough influence to matter in the process.
	if (tier == TierSeniorLeadership || tier == TierMidManagement) && influence >= cfg.StakeholderInfluenceMin {
		return RoleStakeholder
	}

	// Introducers: entry points into the account.
	return RoleIntroducer
}
