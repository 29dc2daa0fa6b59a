package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"html"
	"log"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/mwheeler/buyergroup-intel/internal/buyergroup"
	"github.com/mwheeler/buyergroup-intel/internal/store"
)

func main() {
	reportPath := flag.String("report", "", "Report JSON file produced by enrich-company")
	dbPath := flag.String("db", "", "SQLite run archive")
	runID := flag.String("run", "", "Run id to load from the archive")
	companyID := flag.String("company", "", "Load the latest archived run for this company")
	outPath := flag.String("out", "report.html", "HTML output path")
	list := flag.Bool("list", false, "List archived runs and exit")
	flag.Parse()

	if *list {
		if *dbPath == "" {
			log.Fatal("-list requires -db")
		}
		listRuns(*dbPath, *companyID)
		return
	}

	env, err := loadEnvelope(*reportPath, *dbPath, *runID, *companyID)
	if err != nil {
		log.Fatal(err)
	}

	doc, err := renderHTML(env)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(*outPath, []byte(doc), 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("rendered %s run for %s to %s", env.GeneratedAt.Format("2006-01-02"), env.Company.CompanyID, *outPath)
}

func loadEnvelope(reportPath, dbPath, runID, companyID string) (buyergroup.ReportEnvelope, error) {
	var zero buyergroup.ReportEnvelope
	if reportPath != "" {
		blob, err := os.ReadFile(reportPath)
		if err != nil {
			return zero, fmt.Errorf("read report: %w", err)
		}
		var env buyergroup.ReportEnvelope
		if err := json.Unmarshal(blob, &env); err != nil {
			return zero, fmt.Errorf("decode report %s: %w", reportPath, err)
		}
		return env, nil
	}
	if dbPath == "" {
		return zero, fmt.Errorf("either -report or -db is required")
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return zero, err
	}
	defer s.Close()

	if runID == "" {
		if companyID == "" {
			return zero, fmt.Errorf("either -run or -company is required with -db")
		}
		runs, err := s.ListRuns(companyID, 1)
		if err != nil {
			return zero, err
		}
		if len(runs) == 0 {
			return zero, fmt.Errorf("no archived runs for company %s", companyID)
		}
		runID = runs[0].RunID
	}
	return s.GetRun(runID)
}

func listRuns(dbPath, companyID string) {
	s, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	runs, err := s.ListRuns(companyID, 50)
	if err != nil {
		log.Fatal(err)
	}
	if len(runs) == 0 {
		fmt.Println("no archived runs")
		return
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  %-20s people=%d groups=%d low_confidence=%d\n",
			r.RunID, r.GeneratedAt.Format("2006-01-02 15:04"), r.CompanyID,
			r.PeopleEnriched, r.GroupsBuilt, r.LowConfidenceCount)
	}
}

func renderHTML(env buyergroup.ReportEnvelope) (string, error) {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(env.ReportMarkdown), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	title := "Buyer Group Report"
	if env.Company.CompanyName != "" {
		title = env.Company.CompanyName + " Buyer Group Report"
	}
	return "<!doctype html><html><head><meta charset='utf-8'><title>" + html.EscapeString(title) + "</title>" +
		"<style>" +
		"body{font-family:-apple-system,'Segoe UI',sans-serif;max-width:960px;margin:0 auto;padding:1.5rem;color:#1c1917;} " +
		"table{width:100%;border-collapse:collapse;font-size:0.85rem;} " +
		"th,td{border:1px solid #a8a29e;padding:0.35rem 0.45rem;text-align:left;vertical-align:top;} " +
		"thead th{background:#f1f5f9;font-weight:700;} " +
		"code{background:#f5f5f4;padding:0.1rem 0.3rem;border-radius:3px;} " +
		"h1{border-bottom:2px solid #a8a29e;padding-bottom:0.3rem;}" +
		"</style></head><body>" +
		content.String() +
		"</body></html>", nil
}
