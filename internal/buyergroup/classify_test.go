package buyergroup

import "testing"

func TestClassifyDepartmentPrecedenceSalesBeforeEngineering(t *testing.T) {
	rules := DefaultRules()
	// Matches both the sales and engineering vocabularies; sales is checked
	// first and wins.
	for _, title := range []string{"Sales Engineering Manager", "VP of Sales Engineering"} {
		if got := ClassifyDepartment(rules, title, ""); got != DeptSales {
			t.Fatalf("%q: expected %s, got %s", title, DeptSales, got)
		}
	}
}

func TestClassifyDepartmentTable(t *testing.T) {
	rules := DefaultRules()
	cases := []struct {
		title string
		want  Department
	}{
		{"Software Engineer", DeptEngineering},
		{"Product Manager", DeptEngineering},
		{"Customer Success Manager", DeptCustomerSuccess},
		{"General Counsel", DeptFinance},
		{"Talent Acquisition Partner", DeptHR},
		{"Chief of Staff", DeptOperations},
		{"Demand Generation Specialist", DeptMarketing},
		{"Account Executive", DeptSales},
		{"CEO", DeptExecutive},
		{"Wizard", DeptOther},
	}
	for _, tc := range cases {
		if got := ClassifyDepartment(rules, tc.title, ""); got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.title, tc.want, got)
		}
	}
}

func TestClassifyDepartmentMatchesWholeWordsOnly(t *testing.T) {
	rules := DefaultRules()
	// "chairman" contains "ai" as a substring; word-boundary matching must
	// not classify it as engineering.
	if got := ClassifyDepartment(rules, "Chairman of the Board", ""); got != DeptOther {
		t.Fatalf("expected %s for substring-only match, got %s", DeptOther, got)
	}
}

func TestClassifyDepartmentUsesBiography(t *testing.T) {
	rules := DefaultRules()
	got := ClassifyDepartment(rules, "Team Member", "I run demand generation campaigns across EMEA")
	if got != DeptMarketing {
		t.Fatalf("expected biography keywords to classify as %s, got %s", DeptMarketing, got)
	}
}

func TestClassifySeniorityKeywordOrder(t *testing.T) {
	cfg := DefaultConfig()
	rules := DefaultRules()
	cases := []struct {
		title string
		want  SeniorityTier
	}{
		{"CEO & Co-Founder", TierExecutive},
		{"Chief Revenue Officer", TierExecutive},
		{"VP of Sales", TierSeniorLeadership},
		{"Director of Engineering", TierSeniorLeadership},
		{"Senior Software Engineer", TierMidManagement}, // "senior" outranks "engineer"
		{"Engineering Manager", TierMidManagement},
		{"Software Engineer", TierIndividual},
		{"Sales Development Representative", TierIndividual},
	}
	for _, tc := range cases {
		if got := ClassifySeniority(cfg, rules, tc.title, 0, 0); got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.title, tc.want, got)
		}
	}
}

func TestClassifySeniorityNetworkFallback(t *testing.T) {
	cfg := DefaultConfig()
	rules := DefaultRules()
	cases := []struct {
		connections int
		followers   int
		want        SeniorityTier
	}{
		{1500, 600, TierSeniorLeadership},
		{800, 400, TierMidManagement},
		{100, 50, TierIndividual},
		{0, 0, TierIndividual},
	}
	for _, tc := range cases {
		got := ClassifySeniority(cfg, rules, "Astronaut", tc.connections, tc.followers)
		if got != tc.want {
			t.Fatalf("network %d+%d: expected %s, got %s", tc.connections, tc.followers, tc.want, got)
		}
	}
}

func TestClassifyTeam(t *testing.T) {
	rules := DefaultRules()
	cases := []struct {
		dept  Department
		title string
		want  string
	}{
		{DeptSales, "Enterprise Account Executive", "Enterprise"},
		{DeptEngineering, "Backend Engineer", "Backend"},
		{DeptMarketing, "Growth Marketing Lead", "Growth"},
		{DeptSales, "Sales Manager", "General"},
		{DeptHR, "Recruiter", "General"}, // no team vocabulary for this department
	}
	for _, tc := range cases {
		if got := ClassifyTeam(rules, tc.dept, tc.title); got != tc.want {
			t.Fatalf("%s/%q: expected %q, got %q", tc.dept, tc.title, tc.want, got)
		}
	}
}
