package models

import (
	"encoding/json"
	"time"
)

// Job statuses
const (
	JobStatusActive   = "active"
	JobStatusArchived = "archived"
)

// Candidate pipeline stages
const (
	StageApplied  = "applied"
	StageScreen   = "screen"
	StageTech     = "tech"
	StageOffer    = "offer"
	StageHired    = "hired"
	StageRejected = "rejected"
)

// Stages lists every pipeline stage in pipeline order
var Stages = []string{StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected}

// StageLabels maps a stage to its display label
var StageLabels = map[string]string{
	StageApplied:  "Applied",
	StageScreen:   "Phone Screen",
	StageTech:     "Technical Interview",
	StageOffer:    "Offer Extended",
	StageHired:    "Hired",
	StageRejected: "Rejected",
}

// IsStage reports whether s is a known pipeline stage
func IsStage(s string) bool {
	_, ok := StageLabels[s]
	return ok
}

// Question types
const (
	QuestionSingleChoice = "single_choice"
	QuestionMultiChoice  = "multi_choice"
	QuestionShortText    = "short_text"
	QuestionLongText     = "long_text"
	QuestionNumeric      = "numeric"
	QuestionFileUpload   = "file_upload"
)

// Timeline event types emitted by the store
const (
	EventStageChange         = "stage_change"
	EventNoteAdded           = "note_added"
	EventAssessmentCompleted = "assessment_completed"
)

// Job represents an open position listing
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Status       string    `json:"status"` // active, archived
	Tags         []string  `json:"tags"`
	Order        int       `json:"order"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Benefits     []string  `json:"benefits"`
	Location     string    `json:"location"`
	Salary       string    `json:"salary"`
	Type         string    `json:"type"`
	Department   string    `json:"department"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Candidate represents an applicant tracked through hiring stages.
// Notes, Timeline and AssessmentResponses are denormalized copies; the
// authoritative rows live in their own tables keyed by candidate ID.
type Candidate struct {
	ID                  string                        `json:"id"`
	Name                string                        `json:"name"`
	Email               string                        `json:"email"`
	Phone               string                        `json:"phone"`
	Stage               string                        `json:"stage"`
	JobID               string                        `json:"jobId"` // empty when unassigned
	Resume              string                        `json:"resume"`
	CoverLetter         string                        `json:"coverLetter"`
	Notes               []Note                        `json:"notes"`
	Timeline            []TimelineEvent               `json:"timeline"`
	AssessmentResponses map[string]AssessmentResponse `json:"assessmentResponses"`
	CreatedAt           time.Time                     `json:"createdAt"`
	UpdatedAt           time.Time                     `json:"updatedAt"`
}

// QuestionValidation holds the optional answer constraints of a question
type QuestionValidation struct {
	MinLength *int     `json:"minLength"`
	MaxLength *int     `json:"maxLength"`
	MinValue  *float64 `json:"minValue"`
	MaxValue  *float64 `json:"maxValue"`
	Pattern   *string  `json:"pattern"`
}

// Question is a single item of an assessment section
type Question struct {
	ID               string             `json:"id"`
	Type             string             `json:"type"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Required         bool               `json:"required"`
	Options          []string           `json:"options"`
	Validation       QuestionValidation `json:"validation"`
	ConditionalLogic json.RawMessage    `json:"conditionalLogic,omitempty"` // opaque, unused
	Order            int                `json:"order"`
}

// Section groups questions of an assessment
type Section struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	Order       int        `json:"order"`
}

// AssessmentSettings controls how an assessment is taken
type AssessmentSettings struct {
	TimeLimit             *int `json:"timeLimit"` // minutes
	AllowMultipleAttempts bool `json:"allowMultipleAttempts"`
	ShowResults           bool `json:"showResults"`
}

// Assessment is a structured form linked to a job
type Assessment struct {
	ID          string             `json:"id"`
	JobID       string             `json:"jobId"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Sections    []Section          `json:"sections"`
	Settings    AssessmentSettings `json:"settings"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// QuestionCount returns the number of questions across all sections
func (a *Assessment) QuestionCount() int {
	n := 0
	for _, s := range a.Sections {
		n += len(s.Questions)
	}
	return n
}

// EventMetadata carries the typed payload of a timeline event.
// Which fields are set depends on the event type.
type EventMetadata struct {
	Stage        string `json:"stage,omitempty"`
	FromStage    string `json:"fromStage,omitempty"`
	ToStage      string `json:"toStage,omitempty"`
	NoteID       string `json:"noteId,omitempty"`
	AssessmentID string `json:"assessmentId,omitempty"`
	ResponseID   string `json:"responseId,omitempty"`
}

// TimelineEvent is an append-only audit entry on a candidate
type TimelineEvent struct {
	ID          string        `json:"id"`
	CandidateID string        `json:"candidateId"`
	Type        string        `json:"type"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Metadata    EventMetadata `json:"metadata"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// Note is a free-form recruiter note on a candidate
type Note struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	Content     string    `json:"content"`
	Mentions    []string  `json:"mentions"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AssessmentResponse is a candidate's submitted answers to one assessment.
// Responses is keyed by QuestionKey.
type AssessmentResponse struct {
	ID           string            `json:"id"`
	CandidateID  string            `json:"candidateId"`
	AssessmentID string            `json:"assessmentId"`
	Responses    map[string]Answer `json:"responses"`
	Score        *float64          `json:"score"`
	CompletedAt  *time.Time        `json:"completedAt"`
	TimeSpent    *int64            `json:"timeSpent"` // milliseconds
	CreatedAt    time.Time         `json:"createdAt"`
}

// Setting is a key/value pair persisted in the settings table
type Setting struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Stats holds row counts for the main tables
type Stats struct {
	Jobs        int `json:"jobs"`
	Candidates  int `json:"candidates"`
	Assessments int `json:"assessments"`
}

// Timestamped is implemented by entities whose timestamps are maintained by
// lifecycle hooks
type Timestamped interface {
	SetCreatedAt(t time.Time)
	SetUpdatedAt(t time.Time)
}

func (j *Job) SetCreatedAt(t time.Time)        { j.CreatedAt = t }
func (j *Job) SetUpdatedAt(t time.Time)        { j.UpdatedAt = t }
func (c *Candidate) SetCreatedAt(t time.Time)  { c.CreatedAt = t }
func (c *Candidate) SetUpdatedAt(t time.Time)  { c.UpdatedAt = t }
func (a *Assessment) SetCreatedAt(t time.Time) { a.CreatedAt = t }
func (a *Assessment) SetUpdatedAt(t time.Time) { a.UpdatedAt = t }
func (n *Note) SetCreatedAt(t time.Time)       { n.CreatedAt = t }
func (n *Note) SetUpdatedAt(t time.Time)       { n.UpdatedAt = t }
