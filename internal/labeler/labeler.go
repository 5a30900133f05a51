package labeler

import (
	"regexp"
	"strings"
)

// LeagueRule normalizes a known competition name out of a free-text label.
type LeagueRule struct {
	League     string
	LabelRegex []string

	compiled []*regexp.Regexp
}

func DefaultRules() []LeagueRule {
	return []LeagueRule{
		{League: "premier-league", LabelRegex: []string{`(?i)premier\s*league`, `(?i)\bepl\b`}},
		{League: "la-liga", LabelRegex: []string{`(?i)la\s*liga`, `(?i)primera\s*divisi[oó]n`}},
		{League: "serie-a", LabelRegex: []string{`(?i)serie\s*a\b`}},
		{League: "bundesliga", LabelRegex: []string{`(?i)bundesliga`}},
		{League: "ligue-1", LabelRegex: []string{`(?i)ligue\s*1`}},
		{League: "champions-league", LabelRegex: []string{`(?i)champions\s*league`, `(?i)\bucl\b`}},
		{League: "europa-league", LabelRegex: []string{`(?i)europa\s*league`}},
	}
}

// matchupSeparators mark a label as a "Team A vs Team B" pairing rather than
// a bare competition or team name.
var matchupSeparators = []string{" vs ", " vs. ", " v ", " - "}

// LeagueExtractor derives an optional league value from a match label.
// This is a best-effort heuristic, not a guarantee: pairing labels yield
// nothing, known competitions are normalized, and anything else is returned
// as-is on the assumption it names a single team or competition.
type LeagueExtractor struct {
	Rules []LeagueRule
}

func NewLeagueExtractor() *LeagueExtractor {
	e := &LeagueExtractor{Rules: DefaultRules()}
	e.compile()
	return e
}

func (e *LeagueExtractor) compile() {
	for i := range e.Rules {
		if len(e.Rules[i].compiled) > 0 {
			continue
		}
		for _, raw := range e.Rules[i].LabelRegex {
			re, err := regexp.Compile(raw)
			if err != nil {
				continue
			}
			e.Rules[i].compiled = append(e.Rules[i].compiled, re)
		}
	}
}

func (e *LeagueExtractor) LeagueFromLabel(label string) *string {
	val := strings.TrimSpace(label)
	if val == "" {
		return nil
	}
	lower := " " + strings.ToLower(val) + " "
	for _, sep := range matchupSeparators {
		if strings.Contains(lower, sep) {
			return nil
		}
	}
	if e != nil {
		for i := range e.Rules {
			for _, re := range e.Rules[i].compiled {
				if re.MatchString(val) {
					league := e.Rules[i].League
					return &league
				}
			}
		}
	}
	return &val
}
