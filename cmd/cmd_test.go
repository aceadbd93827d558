package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/khrees2412/recruiter/internal/app"
	"github.com/khrees2412/recruiter/pkg/models"
)

func takeAssessment() *models.Assessment {
	return &models.Assessment{Sections: []models.Section{
		{Questions: []models.Question{
			{Type: models.QuestionNumeric, Required: true},
			{Type: models.QuestionSingleChoice, Options: []string{"a", "b"}},
			{Type: models.QuestionFileUpload},
		}},
		{Questions: []models.Question{
			{Type: models.QuestionMultiChoice, Options: []string{"x", "y", "z"}},
			{Type: models.QuestionLongText},
		}},
	}}
}

func TestParseAnswers(t *testing.T) {
	got, err := parseAnswers(takeAssessment(), []string{
		"0-0=4.5",
		"0-1=1",
		"0-2=cv.pdf",
		"1-0=0, 2",
		"1-1=I like = signs",
	})
	require.NoError(t, err)
	require.Equal(t, map[string]models.Answer{
		"0-0": models.NumberAnswer(4.5),
		"0-1": models.ChoiceAnswer(1),
		"0-2": models.FileAnswer("cv.pdf"),
		"1-0": models.ChoiceAnswer(0, 2),
		"1-1": models.TextAnswer("I like = signs"),
	}, got)
}

func TestParseAnswersErrors(t *testing.T) {
	tests := map[string][]string{
		"missing separator": {"0-0"},
		"unknown key":       {"3-0=1"},
		"not a number":      {"0-0=five"},
		"bad index":         {"1-0=x"},
		"NaN":               {"0-0=NaN"},
		"infinity":          {"0-0=+Inf"},
	}
	for name, pairs := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseAnswers(takeAssessment(), pairs)
			require.ErrorIs(t, err, app.ErrInvalidArgument)
		})
	}
}

func TestParsedAnswersFeedValidation(t *testing.T) {
	a := takeAssessment()

	responses, err := parseAnswers(a, []string{"0-1=0,1"})
	require.NoError(t, err)

	err = a.ValidateResponses(responses)
	var errs models.ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 2)
	require.Equal(t, "This question is required", errs[0].Message)
	require.Equal(t, "Only one option may be selected", errs[1].Message)
}

func TestExtractMentions(t *testing.T) {
	require.Equal(t, []string{"maria", "j.doe"}, extractMentions("ping @maria and @j.doe. Also @maria again"))
	require.Equal(t, []string{}, extractMentions("no handles here"))
}

func TestPipelineBreakdown(t *testing.T) {
	got := pipelineBreakdown([]*models.Candidate{
		{Stage: models.StageApplied},
		{Stage: models.StageTech},
		{Stage: models.StageTech},
	})
	require.Equal(t, map[string]int{models.StageApplied: 1, models.StageTech: 2}, got)
}

func TestFormatPage(t *testing.T) {
	require.Equal(t, "No results", formatPage(models.PaginationMeta{}))
	require.Equal(t, "Page 1 of 3 (45 total), use --page 2 for more",
		formatPage(models.PaginationMeta{Page: 1, PageSize: 20, Total: 45, TotalPages: 3, HasMore: true}))
	require.Equal(t, "Page 3 of 3 (45 total)",
		formatPage(models.PaginationMeta{Page: 3, PageSize: 20, Total: 45, TotalPages: 3}))
}

func TestStageLabel(t *testing.T) {
	require.Equal(t, "Phone Screen", stageLabel(models.StageScreen))
	require.Equal(t, "Culture Fit", stageLabel("culture fit"))
}

func TestReadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"jobs": [{"id": "j1", "title": "Engineer", "status": "active"}],
		"assessmentResponses": [{"id": "r1", "responses": {"0-0": {"kind": "number", "number": 4}}}]
	}`), 0644))

	d, err := readDataset(path)
	require.NoError(t, err)
	require.Len(t, d.Jobs, 1)
	require.Equal(t, "Engineer", d.Jobs[0].Title)
	require.Len(t, d.Responses, 1)

	_, err = readDataset(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
