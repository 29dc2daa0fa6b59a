package buyergroup

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// StageError identifies which pipeline stage a failure came from.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// StageNameFromError extracts the failing stage name, or "pipeline" when the
// error did not come from a stage.
func StageNameFromError(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return "pipeline"
}

// StageProgressFn receives a short status line as each stage starts.
type StageProgressFn func(stage, message string)

// Engine runs the staged enrichment pipeline over one company batch at a
// time. It holds only immutable configuration and rule tables, so a single
// Engine is safe to reuse across companies and goroutines; each Run is a pure
// transformation of its input batch.
type Engine struct {
	cfg   Config
	rules *RuleSet
}

// NewEngine validates the configuration and binds it to a rule set. A nil
// rules argument selects the default tables.
func NewEngine(cfg Config, rules *RuleSet) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	if rules == nil {
		rules = DefaultRules()
	}
	return &Engine{cfg: cfg, rules: rules}, nil
}

func (e *Engine) Config() Config { return e.cfg }

// EnrichPerson derives the full enriched view of one person: resolved title,
// organizational attributes, scores, and buyer-group role. Pure function of
// the record and the engine's tables.
func (e *Engine) EnrichPerson(p PersonRecord) EnrichedPerson {
	title, confidence := ResolveTitle(e.cfg, e.rules, p)
	dept := ClassifyDepartment(e.rules, title, p.Biography)
	tier := ClassifySeniority(e.cfg, e.rules, title, p.ConnectionsCount, p.FollowersCount)
	team := ClassifyTeam(e.rules, dept, title)
	power := DecisionPower(e.rules, title, dept)
	influence := InfluenceScore(e.cfg, e.rules, p, tier)
	risk := FlightRisk(e.cfg, e.rules, p, dept)
	role := AssignRole(e.cfg, tier, dept, power, influence)

	return EnrichedPerson{
		ID:                   p.ID,
		FullName:             p.FullName,
		ResolvedTitle:        title,
		Department:           dept,
		Team:                 team,
		SeniorityTier:        tier,
		DecisionPower:        power,
		InfluenceScore:       influence,
		FlightRisk:           risk,
		BuyerGroupRole:       role,
		EnrichmentConfidence: confidence,
	}
}

// Run executes the full pipeline over one company batch.
func (e *Engine) Run(ctx context.Context, batch CompanyBatch) (Result, error) {
	return e.runWithProgress(ctx, batch, nil)
}

// RunWithProgress is Run with a per-stage status callback for driver scripts
// that narrate long batches.
func (e *Engine) RunWithProgress(ctx context.Context, batch CompanyBatch, progress StageProgressFn) (Result, error) {
	return e.runWithProgress(ctx, batch, progress)
}

func (e *Engine) runWithProgress(ctx context.Context, batch CompanyBatch, progress StageProgressFn) (Result, error) {
	res := Result{
		Batch: batch,
		Metadata: RunMetadata{
			StartedAt:    e.cfg.now(),
			PeopleIn:     len(batch.People),
			RulesVersion: e.rules.Version,
		},
	}
	if strings.TrimSpace(batch.CompanyID) == "" {
		return res, fmt.Errorf("company_id is required")
	}

	emit(progress, "enrich", fmt.Sprintf("Enriching %d people...", len(batch.People)))
	res.People = make([]EnrichedPerson, 0, len(batch.People))
	for _, p := range batch.People {
		if err := ctx.Err(); err != nil {
			return res, &StageError{Stage: "enrich", Err: err}
		}
		ep := e.EnrichPerson(p)
		if ep.EnrichmentConfidence <= e.cfg.InferredTitleConfidence {
			res.Metadata.LowConfidenceCount++
		}
		res.People = append(res.People, ep)
	}
	res.Metadata.PeopleEnriched = len(res.People)
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "enrich")

	emit(progress, "build_groups", "Building buyer groups...")
	groups, err := BuildGroups(e.cfg, batch.CompanyID, res.People)
	if err != nil {
		return res, &StageError{Stage: "build_groups", Err: err}
	}
	res.Groups = groups
	res.Metadata.GroupsBuilt = len(groups)
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "build_groups")

	res.Metadata.CompletedAt = e.cfg.now()
	return res, nil
}

func emit(progress StageProgressFn, stage, message string) {
	if progress != nil {
		progress(stage, message)
	}
}
