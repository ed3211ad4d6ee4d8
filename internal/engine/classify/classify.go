// internal/engine/classify/classify.go
package classify

import (
	"regexp"
	"strings"

	"candidate-intake/internal/engine/normalize"
	"candidate-intake/internal/engine/placeholder"
	"candidate-intake/internal/models"
	"candidate-intake/pkg/lexicon"
)

// Result is the classifier verdict for one raw cell. Field is "" when the
// cell matched nothing.
type Result struct {
	Field models.Field `json:"field,omitempty"`
	Score float64      `json:"score"`
}

var (
	emailRe      = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	nameCharsRe  = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	spocCharsRe  = regexp.MustCompile(`^[a-zA-Z\s\-.]+$`)
	digitRe      = regexp.MustCompile(`[0-9]`)
)

// scorer computes a non-negative score: how strongly value looks like this
// field. The table below is ordered by taxonomy declaration order; the entry
// declared first wins exact ties, which keeps classification deterministic.
type scorer struct {
	field models.Field
	score func(value string) float64
}

var scorers = []scorer{
	{models.FieldName, scoreName},
	{models.FieldEmail, scoreEmail},
	{models.FieldPhone, scorePhone},
	{models.FieldPosition, keywordScorer(lexicon.TitleWords, 12)},
	{models.FieldLocation, keywordScorer(lexicon.Cities, 12)},
	{models.FieldExperience, scoreExperience},
	{models.FieldCurrentCompensation, scoreCompensation},
	{models.FieldExpectedCompensation, scoreCompensation},
	{models.FieldNoticePeriod, scoreNoticePeriod},
	{models.FieldStatus, keywordScorer(lexicon.StatusWords, 12)},
	{models.FieldSourceOfCV, keywordScorer(lexicon.CVSources, 12)},
	{models.FieldCompany, scoreCompany},
	{models.FieldClient, scoreCompany},
	{models.FieldSPOC, scoreSPOC},
}

// Classify scores value against every taxonomy field and returns the best
// match, or an empty Result when nothing scores above zero. Placeholders are
// never classified.
func Classify(value string) Result {
	v := strings.TrimSpace(value)
	if placeholder.IsPlaceholder(v) {
		return Result{}
	}

	best := Result{}
	for _, s := range scorers {
		score := s.score(v)
		if score > best.Score {
			best = Result{Field: s.field, Score: score}
		}
	}
	return best
}

func scoreName(v string) float64 {
	if !nameCharsRe.MatchString(v) {
		return 0
	}

	words := len(strings.Fields(v))
	var score float64
	switch {
	case words >= 2 && words <= 4:
		score = 10
	case words == 1:
		score = 5
	default:
		score = 2
	}

	// Length as a tiebreak nudge, small enough to never jump a band.
	return score + float64(len(v))/100
}

func scoreEmail(v string) float64 {
	if emailRe.MatchString(v) {
		return 12
	}
	return 0
}

func scorePhone(v string) float64 {
	if _, ok := normalize.Phone(v); ok {
		return 12
	}
	return 0
}

func scoreExperience(v string) float64 {
	if _, ok := normalize.ExperienceYears(v); ok {
		return 9
	}
	return 0
}

func scoreCompensation(v string) float64 {
	lakhs, ok := normalize.Compensation(v)
	if ok && lakhs >= 0 && lakhs <= 100 {
		return 9
	}
	return 0
}

func scoreNoticePeriod(v string) float64 {
	if _, ok := normalize.NoticePeriodDays(v); ok {
		return 9
	}
	return 0
}

// keywordScorer builds a soft scorer: keyword membership scores high, but a
// miss still yields a small baseline since these lists are not exhaustive.
func keywordScorer(terms map[string]bool, hit float64) func(string) float64 {
	return func(v string) float64 {
		lower := strings.ToLower(v)
		if terms[lower] {
			return hit
		}

		score := 0.5
		for _, word := range strings.FieldsFunc(lower, splitter) {
			if terms[word] {
				score += hit / 2
			}
		}
		return score
	}
}

func scoreCompany(v string) float64 {
	lower := strings.ToLower(v)
	if lexicon.KnownEmployers[lower] {
		return 12
	}

	score := 0.5
	for _, word := range strings.FieldsFunc(lower, splitter) {
		if lexicon.CompanySuffixes[word] || lexicon.KnownEmployers[word] {
			score += 6
		}
	}
	return score
}

func scoreSPOC(v string) float64 {
	if !spocCharsRe.MatchString(v) {
		return 0
	}
	if digitRe.MatchString(v) || strings.Contains(v, "@") {
		return 0
	}

	words := strings.Fields(v)
	if len(words) < 1 || len(words) > 3 {
		return 0
	}
	for _, w := range words {
		if lexicon.NonPersonTokens[strings.ToLower(strings.Trim(w, "."))] {
			return 0
		}
	}
	return 4
}

func splitter(r rune) bool {
	return r == ' ' || r == ',' || r == '/' || r == '-' || r == '(' || r == ')'
}
