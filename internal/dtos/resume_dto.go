package dtos

import "encoding/json"

// KnowledgeBank is the candidate's full resume material. Each section is
// handed to the model as-is, so any JSON shape works.
type KnowledgeBank struct {
	Skills     json.RawMessage `json:"skills"`
	Experience json.RawMessage `json:"experience"`
	Projects   json.RawMessage `json:"projects"`
}

// ResumeSections holds LaTeX for the tailored resume sections.
type ResumeSections struct {
	Skills     string `json:"skills"`
	Experience string `json:"experience"`
	Projects   string `json:"projects"`
}

type ResumeRequest struct {
	KnowledgeBank KnowledgeBank `json:"knowledge_bank"`

	// Optional: current LaTeX of each section, used as a format reference
	Examples ResumeSections `json:"examples"`
}

type ResumeResponse struct {
	JobID      uint           `json:"job_id"`
	ResumePath string         `json:"resume_path"`
	Sections   ResumeSections `json:"sections"`
}
