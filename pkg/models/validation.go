package models

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ValidationError describes why the answer to one question was rejected
type ValidationError struct {
	QuestionKey string
	Message     string
}

func (e *ValidationError) Error() string {
	if e.QuestionKey == "" {
		return e.Message
	}
	return fmt.Sprintf("question %s: %s", e.QuestionKey, e.Message)
}

// ValidationErrors collects the failures of a whole response set
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks an answer against the question's rules. A nil answer
// means the question was left unanswered.
func (q *Question) Validate(a *Answer) error {
	if a == nil || a.IsEmpty() {
		if q.Required {
			return &ValidationError{Message: "This question is required"}
		}
		return nil
	}

	want, ok := AnswerKindFor(q.Type)
	if !ok {
		return &ValidationError{Message: fmt.Sprintf("unknown question type %q", q.Type)}
	}
	if a.Kind != want {
		return &ValidationError{Message: fmt.Sprintf("expected a %s answer, got %s", want, a.Kind)}
	}

	v := q.Validation
	switch a.Kind {
	case AnswerNumber:
		if math.IsNaN(a.Number) || math.IsInf(a.Number, 0) {
			return &ValidationError{Message: "Value must be a finite number"}
		}
		if v.MinValue != nil && a.Number < *v.MinValue {
			return &ValidationError{Message: fmt.Sprintf("Value must be at least %g", *v.MinValue)}
		}
		if v.MaxValue != nil && a.Number > *v.MaxValue {
			return &ValidationError{Message: fmt.Sprintf("Value must not exceed %g", *v.MaxValue)}
		}
	case AnswerText:
		n := utf8.RuneCountInString(a.Text)
		if v.MinLength != nil && n < *v.MinLength {
			return &ValidationError{Message: fmt.Sprintf("Answer must be at least %d characters", *v.MinLength)}
		}
		if v.MaxLength != nil && *v.MaxLength > 0 && n > *v.MaxLength {
			return &ValidationError{Message: fmt.Sprintf("Answer must not exceed %d characters", *v.MaxLength)}
		}
		if v.Pattern != nil && *v.Pattern != "" {
			re, err := regexp.Compile(*v.Pattern)
			if err != nil {
				return &ValidationError{Message: fmt.Sprintf("invalid pattern: %v", err)}
			}
			if !re.MatchString(a.Text) {
				return &ValidationError{Message: "Answer does not match the expected format"}
			}
		}
	case AnswerChoices:
		if q.Type == QuestionSingleChoice && len(a.Choices) > 1 {
			return &ValidationError{Message: "Only one option may be selected"}
		}
		for _, idx := range a.Choices {
			if idx < 0 || idx >= len(q.Options) {
				return &ValidationError{Message: fmt.Sprintf("option %d does not exist", idx)}
			}
		}
	}
	return nil
}

// ValidateResponses checks every question of the assessment against the
// response map. It returns nil or a ValidationErrors value.
func (a *Assessment) ValidateResponses(responses map[string]Answer) error {
	var errs ValidationErrors
	for si, section := range a.Sections {
		for qi := range section.Questions {
			key := QuestionKey(si, qi)
			var ans *Answer
			if v, ok := responses[key]; ok {
				ans = &v
			}
			if err := section.Questions[qi].Validate(ans); err != nil {
				ve := err.(*ValidationError)
				ve.QuestionKey = key
				errs = append(errs, ve)
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
