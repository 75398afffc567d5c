package practice

// Session is the in-memory state of one practice run for one job.
// It is owned by a Controller and never shared between flows.
type Session struct {
	JobID        string
	SessionID    string
	Phase        Phase
	CurrentIndex int
	Questions    []Question
	Answers      map[int]string
	Feedback     map[int]Feedback
}

func newSession(jobID string) *Session {
	return &Session{
		JobID:    jobID,
		Phase:    PhaseLoading,
		Answers:  make(map[int]string),
		Feedback: make(map[int]Feedback),
	}
}

// nextUnanswered finds the first unanswered index after from, wrapping
// around to the start. ok is false once every question has an answer.
func (s *Session) nextUnanswered(from int) (int, bool) {
	n := len(s.Questions)
	for step := 1; step < n; step++ {
		i := (from + step) % n
		if _, done := s.Answers[i]; !done {
			return i, true
		}
	}
	return 0, false
}

func (s *Session) clone() Session {
	out := *s
	out.Questions = append([]Question(nil), s.Questions...)
	out.Answers = make(map[int]string, len(s.Answers))
	for i, a := range s.Answers {
		out.Answers[i] = a
	}
	out.Feedback = make(map[int]Feedback, len(s.Feedback))
	for i, f := range s.Feedback {
		out.Feedback[i] = f.clone()
	}
	return out
}

func (f Feedback) clone() Feedback {
	f.ImprovementSuggestions = append([]string(nil), f.ImprovementSuggestions...)
	f.IdealPoints = append([]string(nil), f.IdealPoints...)
	return f
}

// Snapshot is a read-only copy of a session plus the controller's
// display bookkeeping.
type Snapshot struct {
	Session
	Job      Job
	InFlight Operation
	Draft    string
}

// Progress is the percentage position of the current question, 1-based,
// so the first question of four reads as 25.
func (s Snapshot) Progress() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return float64(s.CurrentIndex+1) / float64(len(s.Questions)) * 100
}

// Answered reports whether index i has a recorded answer. Used by the
// question navigator.
func (s Snapshot) Answered(i int) bool {
	_, ok := s.Answers[i]
	return ok
}

// CurrentQuestion returns the question at CurrentIndex, if any.
func (s Snapshot) CurrentQuestion() (Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Busy is true while any network call is outstanding.
func (s Snapshot) Busy() bool {
	return s.InFlight != OpNone
}
