package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/justsurfingit/job-tracker/internal/practice"
)

// Runner drives a practice Controller from line-based input. Lines starting
// with "/" are commands, anything else is an answer.
type Runner struct {
	ctrl    *practice.Controller
	display *practice.Display
	in      *bufio.Scanner
	out     io.Writer
	st      styles

	// set when a restart from review failed to generate
	pendingErr error
}

func NewRunner(ctrl *practice.Controller, in io.Reader, out io.Writer) *Runner {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Runner{
		ctrl:    ctrl,
		display: practice.NewDisplay(),
		in:      scanner,
		out:     out,
		st:      newStyles(out),
	}
}

// errQuit ends the session early.
var errQuit = errors.New("quit")

// Run goes through loading, questions, practice and review until the user
// quits or input ends. The controller is closed on return. The summary is
// non-nil if the session reached review.
func (r *Runner) Run(ctx context.Context) (*practice.Summary, error) {
	defer r.ctrl.Close()

	var last *practice.Summary
	for {
		var err error
		switch r.ctrl.Phase() {
		case practice.PhaseLoading:
			err = r.load(ctx)
		case practice.PhaseQuestions:
			err = r.questions()
		case practice.PhasePractice:
			err = r.practice(ctx)
		case practice.PhaseReview:
			sum := r.ctrl.Review()
			last = &sum
			err = r.review(ctx)
		default:
			return last, nil
		}

		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			return last, nil
		}
		if err != nil {
			return last, err
		}
		if ctx.Err() != nil {
			return last, ctx.Err()
		}
	}
}

// readLine returns the next trimmed input line, or io.EOF.
func (r *Runner) readLine() (string, error) {
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(r.in.Text()), nil
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Runner) println(s string) {
	fmt.Fprintln(r.out, s)
}

func (r *Runner) errorf(format string, args ...any) {
	r.println(r.st.err.Render(fmt.Sprintf(format, args...)))
}

// parseCommand splits "/goto 3" into ("goto", "3").
func parseCommand(line string) (name, arg string, ok bool) {
	if !strings.HasPrefix(line, "/") {
		return "", "", false
	}
	fields := strings.Fields(strings.TrimPrefix(line, "/"))
	if len(fields) == 0 {
		return "", "", false
	}
	name = strings.ToLower(fields[0])
	if len(fields) > 1 {
		arg = fields[1]
	}
	return name, arg, true
}

func (r *Runner) load(ctx context.Context) error {
	err := r.pendingErr
	r.pendingErr = nil
	if err == nil {
		job := r.ctrl.Job()
		r.println(r.st.title.Render(fmt.Sprintf("Interview practice: %s at %s", job.Title, job.Company)))
		r.println("Generating questions...")
		_, err = r.ctrl.GenerateQuestions(ctx)
	}

	for err != nil {
		var genErr *practice.GenerationError
		if !errors.As(err, &genErr) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		r.errorf("Failed to generate questions: %v", genErr.Err)
		r.println(r.st.help.Render("/retry to try again, /quit to leave"))

		line, readErr := r.readLine()
		if readErr != nil {
			return readErr
		}
		switch name, _, _ := parseCommand(line); name {
		case "retry":
			r.println("Generating questions...")
			_, err = r.ctrl.Retry(ctx)
		case "quit":
			return errQuit
		}
	}
	return nil
}

func (r *Runner) questions() error {
	snap := r.ctrl.Snapshot()
	r.println(r.st.header.Render(fmt.Sprintf("%d questions ready", len(snap.Questions))))
	for i, q := range snap.Questions {
		r.printf("%2d. [%s, %s] %s\n", i+1, q.Category.Label(), q.Difficulty, q.Question)
	}
	r.println(r.st.help.Render("Press Enter to start practicing, /quit to leave"))

	for {
		line, err := r.readLine()
		if err != nil {
			return err
		}
		if name, _, _ := parseCommand(line); name == "quit" {
			return errQuit
		}
		if line == "" {
			return r.ctrl.StartPractice()
		}
	}
}

// navigator renders "[1✓] 2· 3·" with the current question bracketed.
func navigator(snap practice.Snapshot) string {
	parts := make([]string, len(snap.Questions))
	for i := range snap.Questions {
		mark := "·"
		if snap.Answered(i) {
			mark = "✓"
		}
		p := fmt.Sprintf("%d%s", i+1, mark)
		if i == snap.CurrentIndex {
			p = "[" + p + "]"
		}
		parts[i] = p
	}
	return strings.Join(parts, " ")
}

func (r *Runner) showCurrent() {
	snap := r.ctrl.Snapshot()
	q, ok := snap.CurrentQuestion()
	if !ok {
		return
	}
	r.println("")
	r.println(r.st.header.Render(fmt.Sprintf("Question %d of %d (%.0f%%)", snap.CurrentIndex+1, len(snap.Questions), snap.Progress())))
	r.println(navigator(snap))
	r.printf("[%s, %s] %s\n", q.Category.Label(), q.Difficulty, q.Question)
	if prev, answered := snap.Answers[snap.CurrentIndex]; answered {
		r.println(r.st.help.Render("Previous answer: " + prev))
	}
	r.println(r.st.help.Render("Type your answer, or /prev, /goto N, /quit"))
}

func (r *Runner) practice(ctx context.Context) error {
	r.showCurrent()

	line, err := r.readLine()
	if err != nil {
		return err
	}

	if name, arg, ok := parseCommand(line); ok {
		switch name {
		case "quit":
			return errQuit
		case "prev":
			if err := r.ctrl.Previous(); err != nil {
				r.errorf("Already at the first question")
			}
		case "goto":
			n, convErr := strconv.Atoi(arg)
			if convErr != nil {
				r.errorf("Usage: /goto N")
				return nil
			}
			if err := r.ctrl.GoToQuestion(n - 1); err != nil {
				r.errorf("No question %d", n)
			}
		default:
			r.errorf("Unknown command /%s", name)
		}
		return nil
	}

	r.ctrl.SetDraft(line)
	if !r.ctrl.CanSubmit() {
		r.errorf("Please enter an answer")
		return nil
	}

	r.println("Getting feedback...")
	fb, err := r.ctrl.SubmitDraft(ctx)
	if err != nil {
		var fbErr *practice.FeedbackError
		if errors.As(err, &fbErr) {
			r.errorf("Failed to get feedback: %v. Your answer was not saved, try again.", fbErr.Err)
			return nil
		}
		return err
	}

	band := practice.BandFor(float64(fb.Score))
	r.println(r.st.band(band).Render(fmt.Sprintf("Score: %d/10 (%s)", fb.Score, band)))
	r.println(fb.Feedback)
	return nil
}

func (r *Runner) printReview() {
	sum := r.ctrl.Review()
	r.println("")
	r.println(r.st.title.Render("Review"))
	r.println(r.st.band(sum.Band).Render(fmt.Sprintf("Average score: %.1f/10 (%s)", sum.AverageScore, sum.Band)))
	r.printf("Completed %d of %d questions\n", sum.CompletedCount, sum.TotalQuestions)

	for _, item := range sum.Items {
		r.printf("%2d. %s %s\n", item.Index+1,
			r.st.band(item.Band).Render(fmt.Sprintf("[%d/10]", item.Feedback.Score)),
			item.Question.Question)
		if !r.display.Expanded(item.Index) {
			continue
		}
		r.printf("    Your answer: %s\n", item.Feedback.UserAnswer)
		r.printf("    Feedback: %s\n", item.Feedback.Feedback)
		for _, s := range item.Feedback.ImprovementSuggestions {
			r.printf("    + %s\n", s)
		}
		for _, p := range item.Feedback.IdealPoints {
			r.printf("    * %s\n", p)
		}
	}
	r.println(r.st.help.Render("/show N to expand or collapse, /restart for new questions, /quit to finish"))
}

func (r *Runner) review(ctx context.Context) error {
	r.printReview()

	for {
		line, err := r.readLine()
		if err != nil {
			return err
		}

		name, arg, _ := parseCommand(line)
		switch name {
		case "quit", "done":
			return errQuit
		case "show":
			n, convErr := strconv.Atoi(arg)
			if convErr != nil || n < 1 {
				r.errorf("Usage: /show N")
				continue
			}
			r.display.Toggle(n - 1)
			r.printReview()
		case "restart":
			r.display.CollapseAll()
			r.println("Generating new questions...")
			_, err := r.ctrl.Restart(ctx)
			var genErr *practice.GenerationError
			if err != nil && !errors.As(err, &genErr) {
				return err
			}
			r.pendingErr = err
			return nil
		default:
			r.println(r.st.help.Render("/show N, /restart or /quit"))
		}
	}
}
