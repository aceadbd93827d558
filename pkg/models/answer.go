package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AnswerKind tags the shape of an Answer
type AnswerKind string

const (
	AnswerText    AnswerKind = "text"    // short_text, long_text
	AnswerNumber  AnswerKind = "number"  // numeric
	AnswerChoices AnswerKind = "choices" // single_choice, multi_choice (option indices)
	AnswerFile    AnswerKind = "file"    // file_upload (file name placeholder)
)

// Answer is the value given to one question. Exactly one payload field is
// meaningful, selected by Kind.
type Answer struct {
	Kind    AnswerKind
	Text    string
	Number  float64
	Choices []int
	File    string
}

// TextAnswer builds a text answer
func TextAnswer(s string) Answer { return Answer{Kind: AnswerText, Text: s} }

// NumberAnswer builds a numeric answer
func NumberAnswer(n float64) Answer { return Answer{Kind: AnswerNumber, Number: n} }

// ChoiceAnswer builds a choice answer from selected option indices
func ChoiceAnswer(idx ...int) Answer { return Answer{Kind: AnswerChoices, Choices: idx} }

// FileAnswer builds a file upload answer
func FileAnswer(name string) Answer { return Answer{Kind: AnswerFile, File: name} }

// AnswerKindFor returns the answer kind expected by a question type
func AnswerKindFor(questionType string) (AnswerKind, bool) {
	switch questionType {
	case QuestionShortText, QuestionLongText:
		return AnswerText, true
	case QuestionNumeric:
		return AnswerNumber, true
	case QuestionSingleChoice, QuestionMultiChoice:
		return AnswerChoices, true
	case QuestionFileUpload:
		return AnswerFile, true
	}
	return "", false
}

// IsEmpty reports whether the answer carries no value
func (a Answer) IsEmpty() bool {
	switch a.Kind {
	case AnswerText:
		return strings.TrimSpace(a.Text) == ""
	case AnswerNumber:
		return false
	case AnswerChoices:
		return len(a.Choices) == 0
	case AnswerFile:
		return strings.TrimSpace(a.File) == ""
	}
	return true
}

// String renders the answer for display
func (a Answer) String() string {
	switch a.Kind {
	case AnswerText:
		return a.Text
	case AnswerNumber:
		return strconv.FormatFloat(a.Number, 'f', -1, 64)
	case AnswerChoices:
		parts := make([]string, len(a.Choices))
		for i, c := range a.Choices {
			parts[i] = strconv.Itoa(c)
		}
		return strings.Join(parts, ",")
	case AnswerFile:
		return fmt.Sprintf("[File: %s]", a.File)
	}
	return ""
}

type answerJSON struct {
	Kind    AnswerKind `json:"kind"`
	Text    *string    `json:"text,omitempty"`
	Number  *float64   `json:"number,omitempty"`
	Choices []int      `json:"choices,omitempty"`
	File    *string    `json:"file,omitempty"`
}

// MarshalJSON encodes the answer together with its kind tag
func (a Answer) MarshalJSON() ([]byte, error) {
	out := answerJSON{Kind: a.Kind}
	switch a.Kind {
	case AnswerText:
		out.Text = &a.Text
	case AnswerNumber:
		out.Number = &a.Number
	case AnswerChoices:
		out.Choices = a.Choices
		if out.Choices == nil {
			out.Choices = []int{}
		}
	case AnswerFile:
		out.File = &a.File
	default:
		return nil, fmt.Errorf("unknown answer kind %q", a.Kind)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a tagged answer
func (a *Answer) UnmarshalJSON(data []byte) error {
	var in answerJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*a = Answer{Kind: in.Kind}
	switch in.Kind {
	case AnswerText:
		if in.Text != nil {
			a.Text = *in.Text
		}
	case AnswerNumber:
		if in.Number != nil {
			a.Number = *in.Number
		}
	case AnswerChoices:
		a.Choices = in.Choices
		if a.Choices == nil {
			a.Choices = []int{}
		}
	case AnswerFile:
		if in.File != nil {
			a.File = *in.File
		}
	default:
		return fmt.Errorf("unknown answer kind %q", in.Kind)
	}
	return nil
}

// QuestionKey is the response map key of the question at the given
// section and question positions
func QuestionKey(sectionIndex, questionIndex int) string {
	return fmt.Sprintf("%d-%d", sectionIndex, questionIndex)
}
