package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewJobDefaults(t *testing.T) {
	j := NewJob(Job{Title: "Engineer"})
	require.NotEmpty(t, j.ID)
	require.Equal(t, JobStatusActive, j.Status)
	require.Equal(t, "full-time", j.Type)
	require.Equal(t, []string{}, j.Tags)
	require.Equal(t, []string{}, j.Requirements)
	require.Equal(t, []string{}, j.Benefits)
	require.False(t, j.CreatedAt.IsZero())
	require.Equal(t, time.UTC, j.CreatedAt.Location())

	kept := NewJob(Job{ID: "fixed", Status: JobStatusArchived, Type: "contract"})
	require.Equal(t, "fixed", kept.ID)
	require.Equal(t, JobStatusArchived, kept.Status)
	require.Equal(t, "contract", kept.Type)
}

func TestNewCandidateDefaults(t *testing.T) {
	c := NewCandidate(Candidate{Name: "Ada"})
	require.Equal(t, StageApplied, c.Stage)
	require.NotNil(t, c.Notes)
	require.NotNil(t, c.Timeline)
	require.NotNil(t, c.AssessmentResponses)
	require.NotEqual(t, c.ID, NewCandidate(Candidate{Name: "Ada"}).ID)
}

func TestNewAssessmentDefaultsNestedQuestions(t *testing.T) {
	a := NewAssessment(Assessment{Sections: []Section{{Questions: []Question{{Title: "Why?"}}}}})
	require.NotEmpty(t, a.Sections[0].ID)
	q := a.Sections[0].Questions[0]
	require.NotEmpty(t, q.ID)
	require.Equal(t, QuestionShortText, q.Type)
	require.Equal(t, []string{}, q.Options)

	empty := NewAssessment(Assessment{})
	require.NotNil(t, empty.Sections)
	require.Empty(t, empty.Sections)
}

func TestNewTimelineEventDefaults(t *testing.T) {
	e := NewTimelineEvent(TimelineEvent{CandidateID: "c"})
	require.Equal(t, EventStageChange, e.Type)
	require.NotEmpty(t, e.ID)
	require.False(t, e.CreatedAt.IsZero())
}

func TestIsStage(t *testing.T) {
	for _, s := range Stages {
		require.True(t, IsStage(s), s)
	}
	require.False(t, IsStage("interview"))
	require.False(t, IsStage("all"))
}

func TestPatchLeavesNilFieldsAlone(t *testing.T) {
	j := Job{Title: "Engineer", Tags: []string{"go"}, Order: 3}
	JobPatch{Title: Ptr("Staff Engineer")}.Apply(&j)
	require.Equal(t, "Staff Engineer", j.Title)
	require.Equal(t, []string{"go"}, j.Tags)
	require.Equal(t, 3, j.Order)

	JobPatch{Tags: []string{}, Order: Ptr(0)}.Apply(&j)
	require.Empty(t, j.Tags)
	require.Equal(t, 0, j.Order)
}

func TestAnswerJSON(t *testing.T) {
	tests := []struct {
		name   string
		answer Answer
		json   string
	}{
		{"text", TextAnswer("hello"), `{"kind":"text","text":"hello"}`},
		{"empty text", TextAnswer(""), `{"kind":"text","text":""}`},
		{"number", NumberAnswer(0), `{"kind":"number","number":0}`},
		{"choices", ChoiceAnswer(0, 2), `{"kind":"choices","choices":[0,2]}`},
		{"file", FileAnswer("cv.pdf"), `{"kind":"file","file":"cv.pdf"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.answer)
			require.NoError(t, err)
			require.JSONEq(t, tt.json, string(b))

			var got Answer
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			require.Equal(t, tt.answer.String(), got.String())
			require.Equal(t, tt.answer.Kind, got.Kind)
		})
	}
}

func TestAnswerJSONRejectsUnknownKind(t *testing.T) {
	var a Answer
	require.Error(t, json.Unmarshal([]byte(`{"kind":"audio"}`), &a))

	_, err := json.Marshal(Answer{})
	require.Error(t, err)
}

func TestAnswerString(t *testing.T) {
	require.Equal(t, "[File: resume.pdf]", FileAnswer("resume.pdf").String())
	require.Equal(t, "1,3", ChoiceAnswer(1, 3).String())
	require.Equal(t, "2.5", NumberAnswer(2.5).String())
}

func TestQuestionValidate(t *testing.T) {
	numeric := &Question{Type: QuestionNumeric, Required: true, Validation: QuestionValidation{
		MinValue: Ptr(1.0), MaxValue: Ptr(10.0),
	}}
	text := &Question{Type: QuestionShortText, Validation: QuestionValidation{
		MinLength: Ptr(2), MaxLength: Ptr(5), Pattern: Ptr(`^[a-z]+$`),
	}}
	single := &Question{Type: QuestionSingleChoice, Required: true, Options: []string{"a", "b"}}
	multi := &Question{Type: QuestionMultiChoice, Options: []string{"a", "b", "c"}}
	upload := &Question{Type: QuestionFileUpload, Required: true}

	answer := func(a Answer) *Answer { return &a }

	tests := []struct {
		name    string
		q       *Question
		a       *Answer
		wantErr string
	}{
		{"required missing", numeric, nil, "This question is required"},
		{"zero is an answer", &Question{Type: QuestionNumeric, Required: true}, answer(NumberAnswer(0)), ""},
		{"below min", numeric, answer(NumberAnswer(0)), "Value must be at least 1"},
		{"above max", numeric, answer(NumberAnswer(11)), "Value must not exceed 10"},
		{"in range", numeric, answer(NumberAnswer(5)), ""},
		{"not a number", numeric, answer(NumberAnswer(math.NaN())), "Value must be a finite number"},
		{"infinite", &Question{Type: QuestionNumeric}, answer(NumberAnswer(math.Inf(1))), "Value must be a finite number"},
		{"wrong kind", numeric, answer(TextAnswer("5")), "expected a number answer, got text"},
		{"optional blank", text, answer(TextAnswer("  ")), ""},
		{"too short", text, answer(TextAnswer("a")), "Answer must be at least 2 characters"},
		{"too long", text, answer(TextAnswer("abcdef")), "Answer must not exceed 5 characters"},
		{"pattern mismatch", text, answer(TextAnswer("ab1")), "Answer does not match the expected format"},
		{"text ok", text, answer(TextAnswer("abc")), ""},
		{"single picks two", single, answer(ChoiceAnswer(0, 1)), "Only one option may be selected"},
		{"single none", single, answer(ChoiceAnswer()), "This question is required"},
		{"single ok", single, answer(ChoiceAnswer(1)), ""},
		{"multi out of range", multi, answer(ChoiceAnswer(0, 3)), "option 3 does not exist"},
		{"multi ok", multi, answer(ChoiceAnswer(0, 2)), ""},
		{"upload blank", upload, answer(FileAnswer("")), "This question is required"},
		{"upload ok", upload, answer(FileAnswer("cv.pdf")), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate(tt.a)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestMaxLengthCountsRunes(t *testing.T) {
	q := &Question{Type: QuestionLongText, Validation: QuestionValidation{MaxLength: Ptr(3)}}
	require.NoError(t, q.Validate(&Answer{Kind: AnswerText, Text: "été"}))
}

func TestValidateResponses(t *testing.T) {
	a := &Assessment{Sections: []Section{
		{Questions: []Question{
			{Type: QuestionShortText, Required: true},
			{Type: QuestionNumeric, Validation: QuestionValidation{MaxValue: Ptr(3.0)}},
		}},
		{Questions: []Question{
			{Type: QuestionMultiChoice, Options: []string{"x"}},
		}},
	}}

	require.NoError(t, a.ValidateResponses(map[string]Answer{
		"0-0": TextAnswer("yes"),
		"1-0": ChoiceAnswer(0),
	}))

	err := a.ValidateResponses(map[string]Answer{
		"0-1": NumberAnswer(4),
	})
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 2)
	require.Equal(t, "0-0", errs[0].QuestionKey)
	require.Equal(t, "0-1", errs[1].QuestionKey)
	require.Equal(t, "question 0-0: This question is required; question 0-1: Value must not exceed 3", err.Error())
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Senior Backend Engineer":  "senior-backend-engineer",
		"Développeur Senior":       "developpeur-senior",
		"  C++ / Go -- Dev!  ":     "c-go-dev",
		"QA Engineer (Contract) 2": "qa-engineer-contract-2",
		"":                         "",
	}
	for in, want := range tests {
		require.Equal(t, want, Slugify(in), in)
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	page, meta := Paginate(items, 1, 0)
	require.Len(t, page, 20)
	require.Equal(t, PaginationMeta{Page: 1, PageSize: 20, Total: 45, TotalPages: 3, HasMore: true}, meta)

	page, meta = Paginate(items, 3, 20)
	require.Equal(t, []int{40, 41, 42, 43, 44}, page)
	require.False(t, meta.HasMore)

	page, meta = Paginate(items, 4, 20)
	require.Empty(t, page)
	require.NotNil(t, page)
	require.Equal(t, 3, meta.TotalPages)

	page, meta = Paginate([]int{}, 1, 10)
	require.Empty(t, page)
	require.Equal(t, 0, meta.TotalPages)
}
