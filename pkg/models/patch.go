package models

// Patches describe a partial update. Nil fields are left untouched.

// JobPatch is a partial update of a job
type JobPatch struct {
	Title        *string
	Slug         *string
	Status       *string
	Tags         []string
	Order        *int
	Description  *string
	Requirements []string
	Benefits     []string
	Location     *string
	Salary       *string
	Type         *string
	Department   *string
}

// Apply merges the patch onto j
func (p JobPatch) Apply(j *Job) {
	setString(&j.Title, p.Title)
	setString(&j.Slug, p.Slug)
	setString(&j.Status, p.Status)
	setString(&j.Description, p.Description)
	setString(&j.Location, p.Location)
	setString(&j.Salary, p.Salary)
	setString(&j.Type, p.Type)
	setString(&j.Department, p.Department)
	if p.Order != nil {
		j.Order = *p.Order
	}
	if p.Tags != nil {
		j.Tags = p.Tags
	}
	if p.Requirements != nil {
		j.Requirements = p.Requirements
	}
	if p.Benefits != nil {
		j.Benefits = p.Benefits
	}
}

// CandidatePatch is a partial update of a candidate
type CandidatePatch struct {
	Name        *string
	Email       *string
	Phone       *string
	Stage       *string
	JobID       *string
	Resume      *string
	CoverLetter *string
}

// Apply merges the patch onto c
func (p CandidatePatch) Apply(c *Candidate) {
	setString(&c.Name, p.Name)
	setString(&c.Email, p.Email)
	setString(&c.Phone, p.Phone)
	setString(&c.Stage, p.Stage)
	setString(&c.JobID, p.JobID)
	setString(&c.Resume, p.Resume)
	setString(&c.CoverLetter, p.CoverLetter)
}

// AssessmentPatch is a partial update of an assessment
type AssessmentPatch struct {
	JobID       *string
	Title       *string
	Description *string
	Sections    []Section
	Settings    *AssessmentSettings
	Status      *string
}

// Apply merges the patch onto a
func (p AssessmentPatch) Apply(a *Assessment) {
	setString(&a.JobID, p.JobID)
	setString(&a.Title, p.Title)
	setString(&a.Description, p.Description)
	setString(&a.Status, p.Status)
	if p.Sections != nil {
		a.Sections = p.Sections
	}
	if p.Settings != nil {
		a.Settings = *p.Settings
	}
}

// NotePatch is a partial update of a note
type NotePatch struct {
	Content  *string
	Mentions []string
	Tags     []string
}

// Apply merges the patch onto n
func (p NotePatch) Apply(n *Note) {
	setString(&n.Content, p.Content)
	if p.Mentions != nil {
		n.Mentions = p.Mentions
	}
	if p.Tags != nil {
		n.Tags = p.Tags
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}
