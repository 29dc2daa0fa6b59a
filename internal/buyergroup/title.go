package buyergroup

import "strings"

// ResolveTitle extracts a single primary title from a person's possibly
// conflicting source fields and reports how confident the resolution is.
//
// Resolution order, first non-placeholder wins: the flat position field, the
// title inside the structured current-employer field, then the title of the
// most recent experience entry. When all three are absent the title is
// inferred from network size, at much lower confidence.
func ResolveTitle(cfg Config, rules *RuleSet, p PersonRecord) (title string, confidence float64) {
	if t := strings.TrimSpace(p.RawTitle); !rules.isPlaceholder(t) {
		return t, cfg.DirectTitleConfidence
	}
	if p.RawCurrentEmployer != nil {
		if t := strings.TrimSpace(p.RawCurrentEmployer.Title); !rules.isPlaceholder(t) {
			return t, cfg.DirectTitleConfidence
		}
	}
	if len(p.RawExperience) > 0 {
		if t := strings.TrimSpace(p.RawExperience[0].Title); !rules.isPlaceholder(t) {
			return t, cfg.DirectTitleConfidence
		}
	}
	return inferTitle(cfg, rules, p), cfg.InferredTitleConfidence
}

// inferTitle estimates a generic title from network indicators. A large
// network suggests a senior role; the label is deliberately vague because
// there is no direct evidence.
func inferTitle(cfg Config, rules *RuleSet, p PersonRecord) string {
	if p.ConnectionsCount > cfg.SeniorConnectionsMin || p.FollowersCount > cfg.SeniorFollowersMin {
		return rules.InferredSeniorTitle
	}
	if p.ConnectionsCount > cfg.MidConnectionsMin {
		return rules.InferredMidTitle
	}
	return rules.InferredICTitle
}
