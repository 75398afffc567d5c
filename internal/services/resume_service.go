package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/justsurfingit/job-tracker/internal/dtos"
	"github.com/justsurfingit/job-tracker/internal/metrics"
	"golang.org/x/sync/errgroup"
)

var ErrEmptyKnowledgeBank = errors.New("knowledge bank is empty")

// ResumeService rewrites the skills, experience and projects sections of a
// LaTeX resume for one tracked job.
type ResumeService struct {
	LLM       *LLMService
	Jobs      *JobService
	OutputDir string
	Metrics   *metrics.Metrics

	now func() time.Time
}

func NewResumeService(llm *LLMService, jobs *JobService, outputDir string, m *metrics.Metrics) *ResumeService {
	if m == nil {
		m = metrics.NewNop()
	}
	return &ResumeService{
		LLM:       llm,
		Jobs:      jobs,
		OutputDir: outputDir,
		Metrics:   m,
		now:       time.Now,
	}
}

type resumeSection struct {
	name         string // also the .tex file name
	instructions string
}

var resumeSections = [...]resumeSection{
	{
		name: "skills",
		instructions: `Re-write the technical skills section to best match the job description, using the job's terminology where it fits.
Use \section{Technical Skills} as the header. Write each category as \textbf{Category Name}{: Skill1, Skill2}.
Keep certification \href links exactly as provided.
Only include skills that are mentioned or strongly implied by the job description. Omit categories with no relevant skills.`,
	},
	{
		name: "experience",
		instructions: `Select and re-write the most relevant achievement bullet points, prioritizing impact and relevance.
For each relevant role aim for 4-5 concise bullet points with quantifiable results.
Format company, role, duration and location with \resumeSubheading.
Do NOT invent roles or experience. Omit roles that are not relevant.`,
	},
	{
		name: "projects",
		instructions: `Select and re-write the most relevant projects and their bullet points. Aim for 3 highly relevant projects, or all relevant ones if fewer.
Do NOT invent projects.`,
	},
}

const resumeSectionPrompt = `
You are an expert resume writer. Below is my %s data in JSON format and a job description.

### TASK:
%s

### LATEX RULES:
- Escape special LaTeX characters in all text: & -> \&, %% -> \%%, # -> \#, $ -> \$, _ -> \_, ~ -> \textasciitilde{}, ^ -> \textasciicircum{}
- Every \begin{itemize} needs a matching \end{itemize}.
- Output the LaTeX section only.

### MY DATA (JSON):
%s

### JOB DESCRIPTION:
%s

### EXAMPLE LATEX (FORMAT REFERENCE):
%s
`

// TailorResume generates the three sections concurrently, writes them as
// .tex files into a new folder under OutputDir and stores that folder as the
// job's resume_path. Sections with no knowledge bank data are left empty.
func (s *ResumeService) TailorResume(ctx context.Context, jobID uint, req *dtos.ResumeRequest) (*dtos.ResumeResponse, error) {
	kb := req.KnowledgeBank
	data := [len(resumeSections)]json.RawMessage{kb.Skills, kb.Experience, kb.Projects}
	examples := [len(resumeSections)]string{req.Examples.Skills, req.Examples.Experience, req.Examples.Projects}

	empty := true
	for _, d := range data {
		if !isEmptyJSON(d) {
			empty = false
		}
	}
	if empty {
		return nil, ErrEmptyKnowledgeBank
	}

	job, err := s.Jobs.GetJob(jobID)
	if err != nil {
		return nil, err
	}
	jobDescription := s.LLM.truncate(job.Title + " at " + job.Company.Name + "\n\n" + job.Description)

	var latex [len(resumeSections)]string
	g, gctx := errgroup.WithContext(ctx)
	for i, sec := range resumeSections {
		if isEmptyJSON(data[i]) {
			continue
		}
		g.Go(func() error {
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, data[i], "", "  "); err != nil {
				return fmt.Errorf("%s data: %w", sec.name, err)
			}
			prompt := fmt.Sprintf(resumeSectionPrompt, sec.name, sec.instructions, pretty.String(), jobDescription, examples[i])

			start := time.Now()
			resp, err := s.LLM.Generate(gctx, prompt)
			s.Metrics.ObserveLLM("resume_"+sec.name, start)
			if err != nil {
				return fmt.Errorf("generate %s section: %w", sec.name, err)
			}

			latex[i] = cleanLatexOutput(resp)
			if latex[i] == "" {
				log.Printf("⚠️  Model returned an empty %s section for job %d", sec.name, jobID)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dir := filepath.Join(s.OutputDir, fmt.Sprintf("job_%d_%s", jobID, s.now().Format("20060102_150405")))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create resume folder: %w", err)
	}
	for i, sec := range resumeSections {
		if err := os.WriteFile(filepath.Join(dir, sec.name+".tex"), []byte(latex[i]), 0o644); err != nil {
			return nil, fmt.Errorf("write %s section: %w", sec.name, err)
		}
	}

	if _, err := s.Jobs.UpdateJob(jobID, &dtos.JobUpdateRequest{ResumePath: &dir}); err != nil {
		return nil, err
	}
	log.Printf("📄 Tailored resume for job %d written to %s", jobID, dir)

	return &dtos.ResumeResponse{
		JobID:      jobID,
		ResumePath: dir,
		Sections: dtos.ResumeSections{
			Skills:     latex[0],
			Experience: latex[1],
			Projects:   latex[2],
		},
	}, nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "null", "{}", "[]", `""`:
		return true
	}
	return false
}

var latexFence = regexp.MustCompile("(?s)```(?:[a-zA-Z0-9_+-]+)?\\s*(.*?)\\s*```")

// cleanLatexOutput strips a markdown code fence if the model added one.
func cleanLatexOutput(text string) string {
	if m := latexFence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}
