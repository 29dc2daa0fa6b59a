// Package ingest reads people-data provider exports into engine input. Two
// export shapes exist in the wild: JSONL (one person object per line) and CSV
// snapshots whose current_company and experience columns carry embedded JSON.
// Provider exports are messy; the reader recovers what it can and reports how
// many rows it had to skip rather than failing the batch.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mwheeler/buyergroup-intel/internal/buyergroup"
)

// Format identifies a provider export layout.
type Format string

const (
	FormatJSONL Format = "jsonl"
	FormatCSV   Format = "csv"
	FormatAuto  Format = "auto"
)

// DetectFormat picks a format from the file extension. Defaults to JSONL,
// which is what the provider's API export produces.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	default:
		return FormatJSONL
	}
}

// Read loads a provider export and returns the usable person records plus the
// number of rows that were skipped as unrecoverable.
func Read(path string, format Format) ([]buyergroup.PersonRecord, int, error) {
	if format == FormatAuto || format == "" {
		format = DetectFormat(path)
	}
	switch format {
	case FormatJSONL:
		return ReadJSONL(path)
	case FormatCSV:
		return ReadCSV(path)
	default:
		return nil, 0, fmt.Errorf("unknown input format %q", format)
	}
}

// providerRecord mirrors the provider's field names. The engine's PersonRecord
// uses its own vocabulary; toPerson translates between the two.
type providerRecord struct {
	ID                   string                       `json:"id"`
	Name                 string                       `json:"name"`
	Position             string                       `json:"position"`
	About                string                       `json:"about"`
	Connections          flexInt                      `json:"connections"`
	Followers            flexInt                      `json:"followers"`
	RecommendationsCount flexInt                      `json:"recommendations_count"`
	City                 string                       `json:"city"`
	URL                  string                       `json:"url"`
	CurrentCompany       *buyergroup.CurrentEmployer  `json:"current_company"`
	Experience           []buyergroup.ExperienceEntry `json:"experience"`
}

// flexInt tolerates the count encodings seen in provider exports: JSON
// numbers, quoted numbers, floats, null, and empty strings. Anything
// unparseable or negative becomes zero.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	*f = flexInt(coerceCount(strings.Trim(string(data), `"`)))
	return nil
}

func coerceCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
		return int(v)
	}
	return 0
}

func toPerson(rec providerRecord, rowNum int) buyergroup.PersonRecord {
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		id = fmt.Sprintf("row-%d", rowNum)
	}
	return buyergroup.PersonRecord{
		ID:                   id,
		FullName:             strings.TrimSpace(rec.Name),
		RawTitle:             strings.TrimSpace(rec.Position),
		Biography:            strings.TrimSpace(rec.About),
		ConnectionsCount:     int(rec.Connections),
		FollowersCount:       int(rec.Followers),
		RecommendationsCount: int(rec.RecommendationsCount),
		Location:             strings.TrimSpace(rec.City),
		ProfileURL:           strings.TrimSpace(rec.URL),
		RawExperience:        rec.Experience,
		RawCurrentEmployer:   rec.CurrentCompany,
	}
}

// ReadJSONL reads one person object per line. Blank lines are ignored and
// malformed lines are counted as skipped, matching how provider API exports
// occasionally truncate a record mid-write.
func ReadJSONL(path string) ([]buyergroup.PersonRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}

	var people []buyergroup.PersonRecord
	skipped := 0
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var rec providerRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			skipped++
			continue
		}
		people = append(people, toPerson(rec, i+1))
	}
	return people, skipped, nil
}

// ReadCSV reads a header-mapped CSV snapshot. The current_company and
// experience columns hold JSON with doubled quote escaping; a column that
// fails to parse is treated as absent rather than poisoning the row.
func ReadCSV(path string) ([]buyergroup.PersonRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header from %s: %w", path, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var people []buyergroup.PersonRecord
	skipped := 0
	rowNum := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			skipped++
			continue
		}
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		rec := providerRecord{
			ID:                   get("id"),
			Name:                 get("name"),
			Position:             get("position"),
			About:                get("about"),
			Connections:          flexInt(coerceCount(get("connections"))),
			Followers:            flexInt(coerceCount(get("followers"))),
			RecommendationsCount: flexInt(coerceCount(get("recommendations_count"))),
			City:                 get("city"),
			URL:                  get("url"),
		}
		if raw := get("current_company"); raw != "" {
			var ce buyergroup.CurrentEmployer
			if parseEmbedded(raw, &ce) {
				rec.CurrentCompany = &ce
			}
		}
		if raw := get("experience"); raw != "" {
			var exp []buyergroup.ExperienceEntry
			if parseEmbedded(raw, &exp) {
				rec.Experience = exp
			}
		}
		people = append(people, toPerson(rec, rowNum))
	}
	return people, skipped, nil
}

// parseEmbedded decodes a JSON column value. Some snapshot exporters double
// every quote inside these columns, so a failed plain parse gets one retry
// with the doubling undone. Returns false when neither form parses.
func parseEmbedded(raw string, v any) bool {
	raw = strings.TrimSpace(raw)
	if json.Unmarshal([]byte(raw), v) == nil {
		return true
	}
	return json.Unmarshal([]byte(strings.ReplaceAll(raw, `""`, `"`)), v) == nil
}
