package buyergroup

import (
	"regexp"
	"strings"
)

// DepartmentRule is one entry in the ordered department cascade. The first
// rule whose pattern matches wins, so list order is the tie-break policy:
// "VP of Sales Engineering" matches both sales and engineering vocabularies
// and classifies as sales because sales is checked first.
type DepartmentRule struct {
	Department Department
	Keywords   []string
	pattern    *regexp.Regexp
}

// SeniorityRule is one entry in the ordered seniority cascade.
type SeniorityRule struct {
	Tier     SeniorityTier
	Keywords []string
	pattern  *regexp.Regexp
}

// TeamRule maps a sub-team label to its vocabulary within one department.
type TeamRule struct {
	Team     string
	Keywords []string
	pattern  *regexp.Regexp
}

// titleTier is one decision-power increment keyed off title vocabulary.
type titleTier struct {
	Keywords  []string
	Increment float64
	pattern   *regexp.Regexp
}

// RuleSet is the full set of classification tables. It is built once at
// startup, never mutated, and passed explicitly into every classification
// call so runs share no hidden state.
type RuleSet struct {
	Version string

	Departments []DepartmentRule
	Seniority   []SeniorityRule
	Teams       map[Department][]TeamRule

	// PlaceholderTitles are provider values that mean "no data".
	PlaceholderTitles map[string]bool

	// Generic labels assigned when the title must be inferred from network size.
	InferredSeniorTitle string
	InferredMidTitle    string
	InferredICTitle     string

	// Decision power inputs.
	TitleTiers      []titleTier
	DepartmentPower map[Department]float64

	// Influence seniority bonuses.
	SeniorityBonus map[SeniorityTier]float64

	// Departments with historically higher turnover (flight risk increment).
	HighTurnoverDepartments map[Department]bool
}

// wordPattern compiles keywords into a single word-boundary alternation so
// short keywords ("ml", "pr", "cx") never match inside longer words.
func wordPattern(keywords []string) *regexp.Regexp {
	quoted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		quoted = append(quoted, regexp.QuoteMeta(strings.ToLower(k)))
	}
	return regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
}

// DefaultRules builds the production rule tables. Bump Version whenever the
// vocabularies or increments change so persisted runs record which tables
// produced them.
func DefaultRules() *RuleSet {
	rs := &RuleSet{
		Version: "2025.1",
		Departments: []DepartmentRule{
			{Department: DeptSales, Keywords: []string{
				"sales", "revenue", "revops", "account executive", "business development",
				"sales development", "sales operations", "revenue operations", "sales enablement",
				"field sales", "inside sales", "enterprise sales", "commercial sales",
				"bdr", "sdr", "ae", "client manager",
			}},
			{Department: DeptMarketing, Keywords: []string{
				"marketing", "product marketing", "field marketing", "demand generation",
				"demand gen", "growth marketing", "digital marketing", "content marketing",
				"brand", "communications", "public relations", "pr", "social media",
			}},
			{Department: DeptEngineering, Keywords: []string{
				"engineer", "engineering", "software", "developer", "programmer", "architect",
				"technical", "product manager", "product owner", "scrum master", "devops",
				"site reliability", "sre", "platform", "infrastructure", "backend", "frontend",
				"full stack", "data engineer", "machine learning", "ai", "ml", "ux", "ui",
			}},
			{Department: DeptCustomerSuccess, Keywords: []string{
				"customer success", "customer support", "customer experience", "cx",
				"support engineer", "technical support", "account manager", "solutions architect",
			}},
			{Department: DeptOperations, Keywords: []string{
				"operations", "ops", "strategy", "partnerships", "alliances", "channel",
				"chief of staff", "business operations",
			}},
			{Department: DeptHR, Keywords: []string{
				"hr", "human resources", "people", "talent", "recruiting", "recruitment",
				"people operations", "talent acquisition",
			}},
			{Department: DeptFinance, Keywords: []string{
				"finance", "financial", "accounting", "controller", "cfo", "legal",
				"counsel", "attorney", "compliance", "risk", "audit", "treasurer",
			}},
			{Department: DeptExecutive, Keywords: []string{
				"ceo", "cto", "coo", "president", "vice president", "vp",
				"director", "head of", "chief", "founder", "co-founder", "executive",
			}},
		},
		Seniority: []SeniorityRule{
			{Tier: TierExecutive, Keywords: []string{
				"ceo", "cto", "cfo", "coo", "chief", "president", "founder", "co-founder",
			}},
			{Tier: TierSeniorLeadership, Keywords: []string{
				"vice president", "vp", "director", "head of",
			}},
			{Tier: TierMidManagement, Keywords: []string{
				"manager", "lead", "senior", "principal",
			}},
			{Tier: TierIndividual, Keywords: []string{
				"engineer", "developer", "analyst", "specialist", "coordinator",
				"representative", "associate",
			}},
		},
		Teams: map[Department][]TeamRule{
			DeptSales: {
				{Team: "Enterprise", Keywords: []string{"enterprise"}},
				{Team: "Mid-Market", Keywords: []string{"mid-market", "mid market"}},
				{Team: "SMB", Keywords: []string{"smb"}},
				{Team: "Inside Sales", Keywords: []string{"inside"}},
				{Team: "Field Sales", Keywords: []string{"field"}},
			},
			DeptMarketing: {
				{Team: "Growth", Keywords: []string{"growth", "acquisition", "retention"}},
				{Team: "Content", Keywords: []string{"content"}},
				{Team: "Demand Gen", Keywords: []string{"demand gen", "demand generation"}},
				{Team: "Brand", Keywords: []string{"brand", "communications"}},
				{Team: "Events", Keywords: []string{"events"}},
			},
			DeptEngineering: {
				{Team: "Platform", Keywords: []string{"platform", "infrastructure", "core"}},
				{Team: "Frontend", Keywords: []string{"frontend", "web"}},
				{Team: "Backend", Keywords: []string{"backend", "api"}},
				{Team: "Mobile", Keywords: []string{"mobile"}},
				{Team: "Product", Keywords: []string{"product"}},
			},
		},
		PlaceholderTitles: map[string]bool{
			"":     true,
			"--":   true,
			"none": true,
			"n/a":  true,
		},
		InferredSeniorTitle: "Senior Manager",
		InferredMidTitle:    "Manager",
		InferredICTitle:     "Individual Contributor",
		TitleTiers: []titleTier{
			{Keywords: []string{"ceo", "cfo", "cto", "coo", "chief", "president", "founder", "co-founder"}, Increment: 0.4},
			{Keywords: []string{"vp", "vice president"}, Increment: 0.3},
			{Keywords: []string{"director", "head of"}, Increment: 0.2},
			{Keywords: []string{"manager", "lead"}, Increment: 0.1},
		},
		DepartmentPower: map[Department]float64{
			DeptExecutive:       0.3,
			DeptSales:           0.25,
			DeptEngineering:     0.2,
			DeptMarketing:       0.15,
			DeptCustomerSuccess: 0.1,
			DeptOperations:      0.1,
			DeptFinance:         0.1,
			DeptHR:              0.05,
			DeptOther:           0.05,
		},
		SeniorityBonus: map[SeniorityTier]float64{
			TierExecutive:        5.0,
			TierSeniorLeadership: 3.0,
			TierMidManagement:    1.5,
			TierIndividual:       0.5,
		},
		HighTurnoverDepartments: map[Department]bool{
			DeptEngineering: true,
			DeptSales:       true,
		},
	}
	rs.compile()
	return rs
}

func (rs *RuleSet) compile() {
	for i := range rs.Departments {
		rs.Departments[i].pattern = wordPattern(rs.Departments[i].Keywords)
	}
	for i := range rs.Seniority {
		rs.Seniority[i].pattern = wordPattern(rs.Seniority[i].Keywords)
	}
	for dept, rules := range rs.Teams {
		for i := range rules {
			rules[i].pattern = wordPattern(rules[i].Keywords)
		}
		rs.Teams[dept] = rules
	}
	for i := range rs.TitleTiers {
		rs.TitleTiers[i].pattern = wordPattern(rs.TitleTiers[i].Keywords)
	}
}

// isPlaceholder reports whether a provider title value means "no data".
func (rs *RuleSet) isPlaceholder(title string) bool {
	return rs.PlaceholderTitles[strings.ToLower(strings.TrimSpace(title))]
}
