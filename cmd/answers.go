package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/khrees2412/recruiter/internal/app"
	"github.com/khrees2412/recruiter/pkg/models"
)

// parseAnswers turns "section-question=value" pairs into a response map,
// reading each value according to the type of the question it answers.
// Choice values are comma separated option indices.
func parseAnswers(a *models.Assessment, pairs []string) (map[string]models.Answer, error) {
	questions := map[string]*models.Question{}
	for si := range a.Sections {
		for qi := range a.Sections[si].Questions {
			questions[models.QuestionKey(si, qi)] = &a.Sections[si].Questions[qi]
		}
	}

	responses := map[string]models.Answer{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: answer %q must look like KEY=VALUE", app.ErrInvalidArgument, pair)
		}
		key = strings.TrimSpace(key)
		q, ok := questions[key]
		if !ok {
			return nil, fmt.Errorf("%w: no question %q in this assessment", app.ErrInvalidArgument, key)
		}
		answer, err := parseAnswer(q, value)
		if err != nil {
			return nil, fmt.Errorf("%w: question %s: %v", app.ErrInvalidArgument, key, err)
		}
		responses[key] = answer
	}
	return responses, nil
}

func parseAnswer(q *models.Question, value string) (models.Answer, error) {
	kind, ok := models.AnswerKindFor(q.Type)
	if !ok {
		return models.Answer{}, fmt.Errorf("unknown question type %q", q.Type)
	}

	switch kind {
	case models.AnswerNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return models.Answer{}, fmt.Errorf("%q is not a number", value)
		}
		return models.NumberAnswer(n), nil
	case models.AnswerChoices:
		var idx []int
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			i, err := strconv.Atoi(part)
			if err != nil {
				return models.Answer{}, fmt.Errorf("%q is not an option index", part)
			}
			idx = append(idx, i)
		}
		return models.ChoiceAnswer(idx...), nil
	case models.AnswerFile:
		return models.FileAnswer(value), nil
	default:
		return models.TextAnswer(value), nil
	}
}
