package buyergroup

import "time"

const Disclaimer = "This is a deterministic, explainable heuristic assessment of buyer group structure, " +
	"not a statistically validated model. Scores reflect title, department, and network signals only."

type Department string

const (
	DeptSales            Department = "Sales & Revenue Operations"
	DeptMarketing        Department = "Marketing"
	DeptEngineering      Department = "Engineering & Product"
	DeptCustomerSuccess  Department = "Customer Success & Support"
	DeptOperations       Department = "Operations & Business"
	DeptHR               Department = "HR & People"
	DeptFinance          Department = "Finance & Legal"
	DeptExecutive        Department = "Executive & Leadership"
	DeptOther            Department = "Other"
)

// Departments lists every department in the fixed order used for partitioning
// and for deterministic iteration over per-department maps.
var Departments = []Department{
	DeptSales,
	DeptMarketing,
	DeptEngineering,
	DeptCustomerSuccess,
	DeptOperations,
	DeptHR,
	DeptFinance,
	DeptExecutive,
	DeptOther,
}

type SeniorityTier string

const (
	TierExecutive        SeniorityTier = "Executive"
	TierSeniorLeadership SeniorityTier = "Senior Leadership"
	TierMidManagement    SeniorityTier = "Mid-Level Management"
	TierIndividual       SeniorityTier = "Individual Contributor"
)

type BuyerRole string

const (
	RoleDecisionMaker BuyerRole = "decision_maker"
	RoleChampion      BuyerRole = "champion"
	RoleStakeholder   BuyerRole = "stakeholder"
	RoleBlocker       BuyerRole = "blocker"
	RoleIntroducer    BuyerRole = "introducer"
)

// BuyerRoles lists every role in precedence order (the order the assigner
// evaluates them, and the order role buckets are reported).
var BuyerRoles = []BuyerRole{RoleDecisionMaker, RoleChampion, RoleStakeholder, RoleBlocker, RoleIntroducer}

type EngagementStrategy string

const (
	StrategyExecutiveSponsor     EngagementStrategy = "executive_sponsor"
	StrategyChampionLed          EngagementStrategy = "champion_led"
	StrategyBlockerMitigation    EngagementStrategy = "blocker_mitigation"
	StrategyStakeholderConsensus EngagementStrategy = "stakeholder_consensus"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ExperienceEntry is one prior-role entry from a person's work history.
// Every field is optional in the provider export.
type ExperienceEntry struct {
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// CurrentEmployer is the structured current-position field some provider
// exports carry alongside the flat position string.
type CurrentEmployer struct {
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
}

// PersonRecord is one raw person as delivered by the people-data provider.
// Records are immutable once ingested; numeric counts are always non-negative
// (the ingest layer coerces missing/malformed values to zero).
type PersonRecord struct {
	ID                   string            `json:"id"`
	FullName             string            `json:"full_name"`
	RawTitle             string            `json:"raw_title,omitempty"`
	Biography            string            `json:"biography,omitempty"`
	ConnectionsCount     int               `json:"connections_count"`
	FollowersCount       int               `json:"followers_count"`
	RecommendationsCount int               `json:"recommendations_count"`
	Location             string            `json:"location,omitempty"`
	ProfileURL           string            `json:"profile_url,omitempty"`
	RawExperience        []ExperienceEntry `json:"raw_experience,omitempty"`
	RawCurrentEmployer   *CurrentEmployer  `json:"raw_current_employer,omitempty"`
}

// EnrichedPerson is the fully derived view of one PersonRecord. It is
// recomputed wholesale on every run and never mutated in place.
type EnrichedPerson struct {
	ID                   string        `json:"id"`
	FullName             string        `json:"full_name"`
	ResolvedTitle        string        `json:"resolved_title"`
	Department           Department    `json:"department"`
	Team                 string        `json:"team"`
	SeniorityTier        SeniorityTier `json:"seniority_tier"`
	DecisionPower        float64       `json:"decision_power"`
	InfluenceScore       float64       `json:"influence_score"`
	FlightRisk           float64       `json:"flight_risk"`
	BuyerGroupRole       BuyerRole     `json:"buyer_group_role"`
	EnrichmentConfidence float64       `json:"enrichment_confidence"`
}

// GroupMetrics aggregates the members of one buyer group.
type GroupMetrics struct {
	TotalInfluence    float64 `json:"total_influence"`
	MeanDecisionPower float64 `json:"mean_decision_power"`
	MeanFlightRisk    float64 `json:"mean_flight_risk"`
	CoverageScore     float64 `json:"coverage_score"`
}

// CompanyWideKey is the grouping key for the fallback group that absorbs
// departments too small to stand on their own.
const CompanyWideKey = "company-wide"

// BuyerGroup is one engageable cluster of enriched people.
type BuyerGroup struct {
	ID                 string                 `json:"id"`
	CompanyID          string                 `json:"company_id"`
	GroupingKey        string                 `json:"grouping_key"`
	MemberIDs          []string               `json:"member_ids"`
	RoleBuckets        map[BuyerRole][]string `json:"role_buckets"`
	Metrics            GroupMetrics           `json:"aggregate_metrics"`
	EngagementStrategy EngagementStrategy     `json:"engagement_strategy"`
	Priority           Priority               `json:"priority"`
}

// CompanyBatch is the engine's input: one company's complete, materialized
// batch of person records.
type CompanyBatch struct {
	CompanyID   string         `json:"company_id"`
	CompanyName string         `json:"company_name,omitempty"`
	People      []PersonRecord `json:"people"`
}

// RunMetadata records what a single engine run did.
type RunMetadata struct {
	StagesExecuted     []string  `json:"stages_executed"`
	StartedAt          time.Time `json:"started_at"`
	CompletedAt        time.Time `json:"completed_at"`
	PeopleIn           int       `json:"people_in"`
	PeopleEnriched     int       `json:"people_enriched"`
	GroupsBuilt        int       `json:"groups_built"`
	LowConfidenceCount int       `json:"low_confidence_count"`
	RulesVersion       string    `json:"rules_version"`
}

// Result is the raw output of one engine run, before report assembly.
type Result struct {
	Batch    CompanyBatch
	People   []EnrichedPerson
	Groups   []BuyerGroup
	Metadata RunMetadata
}

// CompanySummary is the company-level rollup in the report envelope.
type CompanySummary struct {
	CompanyID              string             `json:"company_id"`
	CompanyName            string             `json:"company_name,omitempty"`
	TotalEmployees         int                `json:"total_employees"`
	DepartmentDistribution map[Department]int `json:"department_distribution"`
	GroupsByPriority       map[Priority]int   `json:"groups_by_priority"`
	MeanCoverageScore      float64            `json:"mean_coverage_score"`
	SalesPercentage        float64            `json:"sales_percentage"`
	MarketingPercentage    float64            `json:"marketing_percentage"`
	CompanyType            string             `json:"company_type"`
}

// ReportEnvelope is the output contract handed to the report/spreadsheet
// collaborators. It marshals to plain nested JSON with no engine-internal
// types beyond string enums.
type ReportEnvelope struct {
	Company         CompanySummary   `json:"company"`
	EnrichedPeople  []EnrichedPerson `json:"enriched_people"`
	BuyerGroups     []BuyerGroup     `json:"buyer_groups"`
	Recommendations []string         `json:"recommendations"`
	ReportMarkdown  string           `json:"report_markdown"`
	RunMetadata     RunMetadata      `json:"run_metadata"`
	GeneratedAt     time.Time        `json:"generated_at"`
	Disclaimer      string           `json:"disclaimer"`
}
