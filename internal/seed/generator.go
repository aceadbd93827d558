package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khrees2412/recruiter/internal/database"
	"github.com/khrees2412/recruiter/pkg/models"
)

// Options sizes the generated dataset
type Options struct {
	Jobs        int
	Candidates  int
	Assessments int
	RandomSeed  int64
}

// DefaultOptions returns the sizes used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Jobs:        25,
		Candidates:  1000,
		Assessments: 3,
		RandomSeed:  42,
	}
}

var (
	jobTitles = []string{
		"Senior Frontend Engineer", "Backend Engineer", "Full Stack Developer", "DevOps Engineer",
		"Data Scientist", "Product Manager", "UX Designer", "QA Engineer", "Mobile Developer",
		"Site Reliability Engineer", "Machine Learning Engineer", "Technical Writer",
		"Engineering Manager", "Security Engineer", "Data Engineer", "Solutions Architect",
		"Customer Success Manager", "Sales Engineer", "Marketing Analyst", "Recruiter",
	}
	departments = []string{"Engineering", "Product", "Design", "Data", "Operations", "Sales", "People"}
	locations   = []string{"Remote", "New York, NY", "San Francisco, CA", "London, UK", "Berlin, DE", "Lagos, NG"}
	jobTypes    = []string{"full-time", "full-time", "full-time", "part-time", "contract"}
	salaries    = []string{"$90k - $120k", "$110k - $140k", "$130k - $170k", "$150k - $200k"}
	tagPool     = []string{"remote", "hybrid", "senior", "junior", "go", "react", "typescript", "python", "aws", "kubernetes", "urgent"}
	benefitPool = []string{"Health insurance", "401k matching", "Unlimited PTO", "Learning budget", "Home office stipend", "Equity"}

	firstNames = []string{
		"Ada", "Grace", "Alan", "Linus", "Margaret", "Dennis", "Barbara", "Ken", "Radia", "Tim",
		"Frances", "John", "Hedy", "Donald", "Katherine", "Guido", "Sophie", "Bjarne", "Anita", "James",
	}
	lastNames = []string{
		"Lovelace", "Hopper", "Turing", "Torvalds", "Hamilton", "Ritchie", "Liskov", "Thompson", "Perlman", "Berners-Lee",
		"Allen", "McCarthy", "Lamarr", "Knuth", "Johnson", "van Rossum", "Wilson", "Stroustrup", "Borg", "Gosling",
	}
)

// generator produces a deterministic dataset from a seeded source
type generator struct {
	rnd *rand.Rand
	now time.Time
}

// Generate builds a sample dataset. The same options and now always yield
// the same dataset.
func Generate(opts Options, now time.Time) database.Dataset {
	g := &generator{rnd: rand.New(rand.NewSource(opts.RandomSeed)), now: now.UTC()}

	var d database.Dataset
	d.Jobs = g.jobs(opts.Jobs)
	d.Candidates, d.Timeline = g.candidates(opts.Candidates, d.Jobs)
	d.Assessments = g.assessments(opts.Assessments, d.Jobs)
	return d
}

func (g *generator) id() string {
	id, err := uuid.NewRandomFromReader(g.rnd)
	if err != nil {
		// a math/rand source never fails to read
		panic(err)
	}
	return id.String()
}

func (g *generator) pick(from []string) string {
	return from[g.rnd.Intn(len(from))]
}

func (g *generator) sample(from []string, n int) []string {
	out := []string{}
	for _, i := range g.rnd.Perm(len(from))[:n] {
		out = append(out, from[i])
	}
	return out
}

// past returns an instant up to maxDays before now
func (g *generator) past(maxDays int) time.Time {
	offset := time.Duration(g.rnd.Int63n(int64(maxDays) * int64(24*time.Hour)))
	return g.now.Add(-offset).Truncate(time.Second)
}

func (g *generator) jobs(n int) []*models.Job {
	jobs := make([]*models.Job, 0, n)
	seen := map[string]int{}
	for i := 0; i < n; i++ {
		title := jobTitles[i%len(jobTitles)]
		slug := models.Slugify(title)
		seen[slug]++
		if c := seen[slug]; c > 1 {
			slug = fmt.Sprintf("%s-%d", slug, c)
		}

		status := models.JobStatusActive
		if g.rnd.Intn(5) == 0 {
			status = models.JobStatusArchived
		}
		created := g.past(120)
		jobs = append(jobs, &models.Job{
			ID:          g.id(),
			Title:       title,
			Slug:        slug,
			Status:      status,
			Tags:        g.sample(tagPool, 1+g.rnd.Intn(3)),
			Order:       i,
			Description: fmt.Sprintf("We are looking for a %s to join our team.", strings.ToLower(title)),
			Requirements: []string{
				fmt.Sprintf("%d+ years of relevant experience", 1+g.rnd.Intn(7)),
				"Strong communication skills",
				"Comfortable working in a fast-paced environment",
			},
			Benefits:   g.sample(benefitPool, 2+g.rnd.Intn(3)),
			Location:   g.pick(locations),
			Salary:     g.pick(salaries),
			Type:       g.pick(jobTypes),
			Department: g.pick(departments),
			CreatedAt:  created,
			UpdatedAt:  created,
		})
	}
	return jobs
}

func (g *generator) candidates(n int, jobs []*models.Job) ([]*models.Candidate, []*models.TimelineEvent) {
	candidates := make([]*models.Candidate, 0, n)
	events := make([]*models.TimelineEvent, 0, n)
	for i := 0; i < n; i++ {
		first, last := g.pick(firstNames), g.pick(lastNames)
		stage := models.Stages[g.rnd.Intn(len(models.Stages))]
		jobID := ""
		if len(jobs) > 0 {
			jobID = jobs[g.rnd.Intn(len(jobs))].ID
		}
		created := g.past(90)

		c := &models.Candidate{
			ID:                  g.id(),
			Name:                first + " " + last,
			Email:               fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(strings.ReplaceAll(last, " ", "")), i),
			Phone:               fmt.Sprintf("+1-555-%04d", g.rnd.Intn(10000)),
			Stage:               stage,
			JobID:               jobID,
			Notes:               []models.Note{},
			Timeline:            []models.TimelineEvent{},
			AssessmentResponses: map[string]models.AssessmentResponse{},
			CreatedAt:           created,
			UpdatedAt:           created,
		}
		candidates = append(candidates, c)
		events = append(events, &models.TimelineEvent{
			ID:          g.id(),
			CandidateID: c.ID,
			Type:        models.EventStageChange,
			Title:       "Application Submitted",
			Description: "Candidate applied for the position",
			Metadata:    models.EventMetadata{Stage: stage},
			CreatedAt:   created,
		})
	}
	return candidates, events
}

func (g *generator) assessments(n int, jobs []*models.Job) []*models.Assessment {
	assessments := make([]*models.Assessment, 0, n)
	for i := 0; i < n && i < len(jobs); i++ {
		job := jobs[i]
		created := job.CreatedAt.Add(24 * time.Hour)
		if created.After(g.now) {
			created = job.CreatedAt
		}
		a := &models.Assessment{
			ID:          g.id(),
			JobID:       job.ID,
			Title:       job.Title + " Assessment",
			Description: "Please complete the following questions for the " + job.Title + " position.",
			Sections:    g.sections(),
			Settings: models.AssessmentSettings{
				TimeLimit: models.Ptr(30 + 15*g.rnd.Intn(4)),
			},
			Status:    "published",
			CreatedAt: created,
			UpdatedAt: created,
		}
		assessments = append(assessments, a)
	}
	return assessments
}

func (g *generator) sections() []models.Section {
	background := []models.Question{
		{Type: models.QuestionNumeric, Title: "How many years of professional experience do you have?", Required: true,
			Validation: models.QuestionValidation{MinValue: models.Ptr(0.0), MaxValue: models.Ptr(50.0)}},
		{Type: models.QuestionSingleChoice, Title: "What is your highest level of education?", Required: true,
			Options: []string{"High school", "Bachelor's degree", "Master's degree", "PhD", "Other"}},
		{Type: models.QuestionShortText, Title: "What is your current job title?", Required: true,
			Validation: models.QuestionValidation{MaxLength: models.Ptr(100)}},
		{Type: models.QuestionFileUpload, Title: "Upload your resume", Required: true},
	}
	technical := []models.Question{
		{Type: models.QuestionMultiChoice, Title: "Which languages are you comfortable with?", Required: true,
			Options: []string{"Go", "TypeScript", "Python", "Java", "Rust"}},
		{Type: models.QuestionSingleChoice, Title: "Which data store would you reach for first?",
			Options: []string{"PostgreSQL", "SQLite", "MongoDB", "Redis"}},
		{Type: models.QuestionLongText, Title: "Describe a difficult bug you tracked down.", Required: true,
			Validation: models.QuestionValidation{MinLength: models.Ptr(50), MaxLength: models.Ptr(2000)}},
		{Type: models.QuestionNumeric, Title: "Rate your testing discipline from 1 to 10.",
			Validation: models.QuestionValidation{MinValue: models.Ptr(1.0), MaxValue: models.Ptr(10.0)}},
	}
	culture := []models.Question{
		{Type: models.QuestionLongText, Title: "Why do you want to work with us?", Required: true,
			Validation: models.QuestionValidation{MaxLength: models.Ptr(1000)}},
		{Type: models.QuestionSingleChoice, Title: "Preferred working arrangement", Required: true,
			Options: []string{"Remote", "Hybrid", "On-site"}},
		{Type: models.QuestionShortText, Title: "When could you start?",
			Validation: models.QuestionValidation{Pattern: models.Ptr(`^\d{4}-\d{2}-\d{2}$`)}},
	}

	sections := []models.Section{
		{Title: "Background", Description: "Tell us about yourself", Questions: background},
		{Title: "Technical", Description: "Your technical skills", Questions: technical},
		{Title: "Culture", Description: "How you like to work", Questions: culture},
	}
	for si := range sections {
		sections[si].ID = g.id()
		sections[si].Order = si
		for qi := range sections[si].Questions {
			q := &sections[si].Questions[qi]
			q.ID = g.id()
			q.Order = qi
			if q.Options == nil {
				q.Options = []string{}
			}
		}
	}
	return sections
}
