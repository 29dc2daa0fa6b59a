package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mwheeler/buyergroup-intel/internal/buyergroup"
	"github.com/mwheeler/buyergroup-intel/internal/ingest"
	"github.com/mwheeler/buyergroup-intel/internal/store"
)

func main() {
	input := flag.String("input", "", "Provider export file (JSONL or CSV)")
	format := flag.String("format", "auto", "Input format: auto, jsonl, csv")
	companyID := flag.String("company", "", "Company identifier")
	companyName := flag.String("company-name", "", "Human-readable company name")
	configPath := flag.String("config", "", "Engine config YAML (defaults apply when empty)")
	dbPath := flag.String("db", "", "SQLite run archive (skipped when empty)")
	outPath := flag.String("out", "", "Report JSON output path (stdout summary only when empty)")
	flag.Parse()

	if *input == "" || *companyID == "" {
		flag.Usage()
		log.Fatal("both -input and -company are required")
	}

	cfg := buyergroup.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = buyergroup.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	engine, err := buyergroup.NewEngine(cfg, nil)
	if err != nil {
		log.Fatal(err)
	}

	people, skipped, err := ingest.Read(*input, ingest.Format(*format))
	if err != nil {
		log.Fatal(err)
	}
	if skipped > 0 {
		log.Printf("skipped %d unreadable row(s) in %s", skipped, *input)
	}
	if len(people) == 0 {
		log.Fatalf("no usable person records in %s", *input)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	batch := buyergroup.CompanyBatch{
		CompanyID:   *companyID,
		CompanyName: *companyName,
		People:      people,
	}
	log.Printf("enriching %d people for company %s", len(people), *companyID)
	result, err := engine.RunWithProgress(ctx, batch, func(stage, message string) {
		log.Printf("[%s] %s", stage, message)
	})
	if err != nil {
		log.Fatal(err)
	}
	report := buyergroup.BuildReport(cfg, result)

	printSummary(os.Stdout, report)

	if *outPath != "" {
		blob, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(*outPath, blob, 0o644); err != nil {
			log.Fatal(err)
		}
		log.Printf("report written to %s", *outPath)
	}

	if *dbPath != "" {
		s, err := store.Open(*dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer s.Close()
		runID, err := s.SaveRun(report)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("run archived as %s in %s", runID, *dbPath)
	}
}

func printSummary(w *os.File, report buyergroup.ReportEnvelope) {
	line := strings.Repeat("=", 60)
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "BUYER GROUP ANALYSIS: %s\n", report.Company.CompanyID)
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Total employees analyzed: %d\n", report.Company.TotalEmployees)
	fmt.Fprintf(w, "Company type: %s (sales %.1f%%, marketing %.1f%%)\n",
		report.Company.CompanyType, report.Company.SalesPercentage, report.Company.MarketingPercentage)
	fmt.Fprintf(w, "Buyer groups: %d\n\n", len(report.BuyerGroups))

	for _, g := range report.BuyerGroups {
		fmt.Fprintf(w, "%s (%d members)\n", g.GroupingKey, len(g.MemberIDs))
		fmt.Fprintf(w, "  priority=%s strategy=%s\n", g.Priority, g.EngagementStrategy)
		fmt.Fprintf(w, "  influence=%.1f power=%.2f risk=%.2f coverage=%.2f\n",
			g.Metrics.TotalInfluence, g.Metrics.MeanDecisionPower,
			g.Metrics.MeanFlightRisk, g.Metrics.CoverageScore)
	}
	if len(report.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for i, r := range report.Recommendations {
			fmt.Fprintf(w, "  %d. %s\n", i+1, r)
		}
	}
	if report.RunMetadata.LowConfidenceCount > 0 {
		fmt.Fprintf(w, "\n%d of %d profiles enriched at low confidence\n",
			report.RunMetadata.LowConfidenceCount, report.RunMetadata.PeopleEnriched)
	}
	fmt.Fprintln(w, line)
}
