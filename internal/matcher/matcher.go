package matcher

import (
	"sort"
	"strings"

	"github.com/khrees2412/recruiter/pkg/models"
)

// CalculateMatchScore calculates how well a candidate's resume and cover
// letter cover a job. Returns a score between 0.0 and 1.0
func CalculateMatchScore(job *models.Job, c *models.Candidate) float64 {
	text := strings.ToLower(c.Resume + " " + c.CoverLetter)
	if strings.TrimSpace(text) == "" {
		return 0
	}

	// Factor 1: Requirements covered (50% weight)
	score := matchTerms(text, job.Requirements) * 0.5

	// Factor 2: Tags mentioned (20% weight)
	score += matchTerms(text, job.Tags) * 0.2

	// Factor 3: Job title keywords (30% weight)
	score += matchTerms(text, extractKeywords(strings.ToLower(job.Title))) * 0.3

	return score
}

// matchTerms returns the share of terms whose keywords all appear in text.
// An empty term list is neutral.
func matchTerms(text string, terms []string) float64 {
	if len(terms) == 0 {
		return 0.5
	}

	matched := 0
	for _, term := range terms {
		keywords := extractKeywords(strings.ToLower(term))
		if len(keywords) == 0 {
			continue
		}
		hit := true
		for _, k := range keywords {
			if !strings.Contains(text, k) {
				hit = false
				break
			}
		}
		if hit {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}

// Ranked pairs a candidate with its match score
type Ranked struct {
	Candidate *models.Candidate
	Score     float64
}

// RankCandidates scores every candidate against the job, best first. Equal
// scores keep their input order.
func RankCandidates(job *models.Job, candidates []*models.Candidate) []Ranked {
	ranked := make([]Ranked, len(candidates))
	for i, c := range candidates {
		ranked[i] = Ranked{Candidate: c, Score: CalculateMatchScore(job, c)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// ScoreResponses grades a submission as the weighted share of questions
// answered with a valid value. Required questions weigh twice as much.
// Returns a score between 0 and 100, or 0 for an assessment without questions.
func ScoreResponses(a *models.Assessment, responses map[string]models.Answer) float64 {
	total, earned := 0.0, 0.0
	for si, section := range a.Sections {
		for qi := range section.Questions {
			q := &section.Questions[qi]
			weight := 1.0
			if q.Required {
				weight = 2.0
			}
			total += weight

			ans, ok := responses[models.QuestionKey(si, qi)]
			if !ok || ans.IsEmpty() {
				continue
			}
			if q.Validate(&ans) == nil {
				earned += weight
			}
		}
	}
	if total == 0 {
		return 0
	}
	return earned / total * 100
}

// extractKeywords extracts meaningful keywords from a title or phrase
func extractKeywords(title string) []string {
	// Common stop words to ignore
	stopWords := map[string]bool{
		"the": true, "a": true, "an": true, "and": true, "or": true,
		"but": true, "in": true, "on": true, "at": true, "to": true,
		"for": true, "of": true, "with": true, "by": true, "years": true,
		"experience": true, "strong": true,
	}

	words := strings.Fields(title)
	keywords := []string{}

	for _, word := range words {
		word = strings.Trim(word, ".,!?;:()+")
		if len(word) > 1 && !stopWords[word] {
			keywords = append(keywords, word)
		}
	}

	return keywords
}
