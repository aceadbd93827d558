package models

import (
	"time"

	"github.com/google/uuid"
)

// Factories turn a partially filled entity into a complete one. Zero-valued
// fields receive defaults; nothing here touches storage.

// Now returns the current instant in UTC without a monotonic reading, so
// values survive a storage round trip unchanged.
func Now() time.Time {
	return time.Now().UTC()
}

// NewID returns a fresh random identifier
func NewID() string {
	return uuid.NewString()
}

func orNew(id string) string {
	if id == "" {
		return NewID()
	}
	return id
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orNow(t time.Time, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t
}

func strings0(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// NewJob returns a fully defaulted job
func NewJob(p Job) *Job {
	now := Now()
	p.ID = orNew(p.ID)
	p.Status = orDefault(p.Status, JobStatusActive)
	p.Type = orDefault(p.Type, "full-time")
	p.Tags = strings0(p.Tags)
	p.Requirements = strings0(p.Requirements)
	p.Benefits = strings0(p.Benefits)
	p.CreatedAt = orNow(p.CreatedAt, now)
	p.UpdatedAt = orNow(p.UpdatedAt, now)
	return &p
}

// NewCandidate returns a fully defaulted candidate in the applied stage
func NewCandidate(p Candidate) *Candidate {
	now := Now()
	p.ID = orNew(p.ID)
	p.Stage = orDefault(p.Stage, StageApplied)
	if p.Notes == nil {
		p.Notes = []Note{}
	}
	if p.Timeline == nil {
		p.Timeline = []TimelineEvent{}
	}
	if p.AssessmentResponses == nil {
		p.AssessmentResponses = map[string]AssessmentResponse{}
	}
	p.CreatedAt = orNow(p.CreatedAt, now)
	p.UpdatedAt = orNow(p.UpdatedAt, now)
	return &p
}

// NewAssessment returns a fully defaulted assessment. Nested sections and
// questions are defaulted as well.
func NewAssessment(p Assessment) *Assessment {
	now := Now()
	p.ID = orNew(p.ID)
	sections := make([]Section, 0, len(p.Sections))
	for _, s := range p.Sections {
		sections = append(sections, *NewSection(s))
	}
	p.Sections = sections
	p.CreatedAt = orNow(p.CreatedAt, now)
	p.UpdatedAt = orNow(p.UpdatedAt, now)
	return &p
}

// NewSection returns a fully defaulted section
func NewSection(p Section) *Section {
	p.ID = orNew(p.ID)
	questions := make([]Question, 0, len(p.Questions))
	for _, q := range p.Questions {
		questions = append(questions, *NewQuestion(q))
	}
	p.Questions = questions
	return &p
}

// NewQuestion returns a fully defaulted short-text question
func NewQuestion(p Question) *Question {
	p.ID = orNew(p.ID)
	p.Type = orDefault(p.Type, QuestionShortText)
	p.Options = strings0(p.Options)
	return &p
}

// NewTimelineEvent returns a fully defaulted stage_change event
func NewTimelineEvent(p TimelineEvent) *TimelineEvent {
	p.ID = orNew(p.ID)
	p.Type = orDefault(p.Type, EventStageChange)
	p.CreatedAt = orNow(p.CreatedAt, Now())
	return &p
}

// NewNote returns a fully defaulted note
func NewNote(p Note) *Note {
	now := Now()
	p.ID = orNew(p.ID)
	p.Mentions = strings0(p.Mentions)
	p.Tags = strings0(p.Tags)
	p.CreatedAt = orNow(p.CreatedAt, now)
	p.UpdatedAt = orNow(p.UpdatedAt, now)
	return &p
}

// NewAssessmentResponse returns a fully defaulted response
func NewAssessmentResponse(p AssessmentResponse) *AssessmentResponse {
	p.ID = orNew(p.ID)
	if p.Responses == nil {
		p.Responses = map[string]Answer{}
	}
	p.CreatedAt = orNow(p.CreatedAt, Now())
	return &p
}
