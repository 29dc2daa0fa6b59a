package buyergroup

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func financeResult() Result {
	people := []EnrichedPerson{
		person("f1", DeptFinance, RoleBlocker, 12, 0.6, 0.5),
		person("f2", DeptFinance, RoleBlocker, 8, 0.5, 0.5),
		person("f3", DeptFinance, RoleStakeholder, 5, 0.4, 0.5),
	}
	return Result{
		Batch:  CompanyBatch{CompanyID: "acme", CompanyName: "Acme"},
		People: people,
		Groups: []BuyerGroup{{
			ID:          "acme_finance_legal_bg",
			CompanyID:   "acme",
			GroupingKey: string(DeptFinance),
			MemberIDs:   []string{"f1", "f2", "f3"},
			RoleBuckets: map[BuyerRole][]string{
				RoleBlocker:     {"f1", "f2"},
				RoleStakeholder: {"f3"},
			},
			Metrics:  GroupMetrics{TotalInfluence: 25, MeanDecisionPower: 0.5},
			Priority: PriorityHigh,
		}},
		Metadata: RunMetadata{PeopleEnriched: 3, LowConfidenceCount: 1},
	}
}

func TestBuildRecommendationsOrderAndContent(t *testing.T) {
	recs := buildRecommendations(financeResult())
	want := []string{
		"Prioritize engagement with the Finance & Legal group: total influence 25.0, mean decision power 0.50.",
		"No Champion identified in Finance & Legal; cultivate an internal advocate before engaging.",
		"Finance & Legal contains 2 potential blocker(s); plan mitigation early in the cycle.",
		"No DecisionMaker identified anywhere in the account; open with executive-level outreach to locate one.",
		"Very small sales team; expand the buyer group to include Marketing and Operations leadership.",
		"1 of 3 profiles were enriched at low confidence (no usable title); verify them manually before outreach.",
	}
	if len(recs) != len(want) {
		t.Fatalf("expected %d recommendations, got %d: %v", len(want), len(recs), recs)
	}
	for i := range want {
		if recs[i] != want[i] {
			t.Fatalf("recommendation %d:\n  want %q\n  got  %q", i, want[i], recs[i])
		}
	}
}

func TestBuildRecommendationsQuietWhenGroupsAreHealthy(t *testing.T) {
	res := Result{
		Batch: CompanyBatch{CompanyID: "acme"},
		People: []EnrichedPerson{
			person("a", DeptSales, RoleDecisionMaker, 10, 0.8, 0.5),
			person("b", DeptSales, RoleChampion, 6, 0.4, 0.5),
			person("c", DeptSales, RoleStakeholder, 4, 0.3, 0.5),
		},
		Groups: []BuyerGroup{{
			GroupingKey: string(DeptSales),
			MemberIDs:   []string{"a", "b", "c"},
			RoleBuckets: map[BuyerRole][]string{
				RoleDecisionMaker: {"a"},
				RoleChampion:      {"b"},
				RoleStakeholder:   {"c"},
			},
			Metrics:  GroupMetrics{TotalInfluence: 20, MeanDecisionPower: 0.5},
			Priority: PriorityMedium,
		}},
		Metadata: RunMetadata{PeopleEnriched: 3},
	}
	if recs := buildRecommendations(res); len(recs) != 0 {
		t.Fatalf("expected no recommendations, got %v", recs)
	}
}

func TestBuildSummaryDistributionAndCompanyType(t *testing.T) {
	res := Result{
		Batch: CompanyBatch{CompanyID: "acme", CompanyName: "Acme"},
		People: []EnrichedPerson{
			person("a", DeptSales, RoleChampion, 6, 0.4, 0.5),
			person("b", DeptSales, RoleIntroducer, 1, 0.1, 0.5),
			person("c", DeptMarketing, RoleIntroducer, 1, 0.1, 0.5),
			person("d", DeptEngineering, RoleIntroducer, 1, 0.1, 0.5),
		},
	}
	s := buildSummary(res)
	if s.TotalEmployees != 4 {
		t.Fatalf("total employees: expected 4, got %d", s.TotalEmployees)
	}
	if s.DepartmentDistribution[DeptSales] != 2 || s.DepartmentDistribution[DeptMarketing] != 1 {
		t.Fatalf("unexpected distribution: %v", s.DepartmentDistribution)
	}
	if !almostEqual(s.SalesPercentage, 50) || !almostEqual(s.MarketingPercentage, 25) {
		t.Fatalf("percentages: sales %g, marketing %g", s.SalesPercentage, s.MarketingPercentage)
	}
	if s.CompanyType != "Sales-Led" {
		t.Fatalf("expected Sales-Led, got %s", s.CompanyType)
	}

	res.People = []EnrichedPerson{
		person("a", DeptMarketing, RoleChampion, 6, 0.4, 0.5),
		person("b", DeptEngineering, RoleIntroducer, 1, 0.1, 0.5),
	}
	if s := buildSummary(res); s.CompanyType != "Marketing-Led" {
		t.Fatalf("expected Marketing-Led, got %s", s.CompanyType)
	}
}

func TestBuildReportMarkdownStructure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Clock = fixedClock
	env := BuildReport(cfg, financeResult())

	for _, want := range []string{
		"# Buyer Group Intelligence Report",
		"- Company: Acme (acme)",
		"- Generated: 2026-08-14T12:00:00Z",
		"## Company Overview",
		"### Department Distribution",
		"## Buyer Groups",
		"### " + string(DeptFinance),
		"- Priority: `high`",
		"## People",
		"## Recommendations",
		"1. Prioritize engagement",
	} {
		if !strings.Contains(env.ReportMarkdown, want) {
			t.Fatalf("markdown missing %q:\n%s", want, env.ReportMarkdown)
		}
	}
	if rows := strings.Count(env.ReportMarkdown, "| Person f"); rows != 3 {
		t.Fatalf("expected 3 people rows, got %d", rows)
	}
}

func TestMarkdownCellEscaping(t *testing.T) {
	got := cell("Head of Sales | EMEA\nand UK")
	if strings.Contains(got, "\n") {
		t.Fatalf("cell must strip newlines, got %q", got)
	}
	if !strings.Contains(got, "\\|") {
		t.Fatalf("cell must escape pipes, got %q", got)
	}
}

func TestReportEnvelopeMarshalsToPlainJSON(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Clock = fixedClock
	e, err := NewEngine(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	res, err := e.Run(context.Background(), sampleBatch())
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(BuildReport(cfg, res))
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{
		"company", "enriched_people", "buyer_groups", "recommendations",
		"report_markdown", "run_metadata", "generated_at", "disclaimer",
	} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("envelope missing %q key", key)
		}
	}
	if decoded["disclaimer"] != Disclaimer {
		t.Fatal("disclaimer text not carried through serialization")
	}
}
