package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/justsurfingit/job-tracker/internal/config"
	"github.com/justsurfingit/job-tracker/internal/database"
	"github.com/justsurfingit/job-tracker/internal/export"
	"github.com/justsurfingit/job-tracker/internal/interviewclient"
	"github.com/justsurfingit/job-tracker/internal/practice"
	"github.com/justsurfingit/job-tracker/internal/services"
	"github.com/justsurfingit/job-tracker/internal/terminal"
	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run a practice interview for a tracked job",
	Long: `Generate interview questions for a job, answer them one at a time and
get a score with feedback for each answer.

By default questions and feedback come from the job tracker API. With --local
the database and Gemini are used directly, using the same environment as the
API server.

Examples:
  prep practice --job-id 7
  prep practice --job-id 7 --export review.xlsx
  prep practice --job-id 7 --local`,
	RunE: runPractice,
}

type practiceFlags struct {
	jobID   string
	title   string
	company string
	apiURL  string
	export  string
	timeout time.Duration
	local   bool
	verbose bool
}

var pf practiceFlags

func init() {
	rootCmd.AddCommand(practiceCmd)

	practiceCmd.Flags().StringVar(&pf.jobID, "job-id", "", "ID of the tracked job (required)")
	practiceCmd.Flags().StringVar(&pf.title, "title", "", "Job title to display (looked up when empty)")
	practiceCmd.Flags().StringVar(&pf.company, "company", "", "Company name to display (looked up when empty)")
	practiceCmd.Flags().StringVar(&pf.apiURL, "api-url", config.APIBaseURL(), "Job tracker API base URL")
	practiceCmd.Flags().StringVarP(&pf.export, "export", "o", "", "Write the review to this .xlsx file")
	practiceCmd.Flags().DurationVar(&pf.timeout, "timeout", config.ClientTimeout(), "Timeout for each generation or feedback call")
	practiceCmd.Flags().BoolVar(&pf.local, "local", false, "Call the database and LLM directly instead of the API")
	practiceCmd.Flags().BoolVarP(&pf.verbose, "verbose", "v", false, "Show log output")
	practiceCmd.MarkFlagRequired("job-id")
}

func runPractice(cmd *cobra.Command, args []string) error {
	if !pf.verbose {
		log.SetOutput(io.Discard)
	}
	ctx := cmd.Context()

	var (
		eval practice.Evaluator
		job  practice.Job
		err  error
	)
	if pf.local {
		eval, job, err = localEvaluator(ctx, pf.jobID)
	} else {
		eval, job, err = remoteEvaluator(ctx, pf.apiURL, pf.jobID)
	}
	if err != nil {
		return err
	}
	if pf.title != "" {
		job.Title = pf.title
	}
	if pf.company != "" {
		job.Company = pf.company
	}

	ctrl := practice.NewController(job, eval, practice.Options{Timeout: pf.timeout})
	summary, err := terminal.NewRunner(ctrl, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
	if err != nil {
		return err
	}

	if pf.export != "" && summary != nil {
		path, err := export.ReviewToExcel(job, *summary, pf.export)
		if err != nil {
			return fmt.Errorf("export review: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Review saved to %s\n", path)
	}
	return nil
}

func remoteEvaluator(ctx context.Context, apiURL, jobID string) (practice.Evaluator, practice.Job, error) {
	client := interviewclient.New(apiURL, nil)
	job := practice.Job{ID: jobID, Title: "Job " + jobID}

	// Display names only; a failed lookup is not fatal.
	if pf.title == "" || pf.company == "" {
		lookupCtx, cancel := context.WithTimeout(ctx, pf.timeout)
		defer cancel()
		if found, err := client.FetchJob(lookupCtx, jobID); err == nil {
			job = found
		} else {
			log.Printf("⚠️  Could not look up job %s: %v", jobID, err)
		}
	}
	return client, job, nil
}

func localEvaluator(ctx context.Context, jobID string) (practice.Evaluator, practice.Job, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, practice.Job{}, fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, practice.Job{}, err
	}
	llm, err := services.NewLLMService(ctx, cfg)
	if err != nil {
		return nil, practice.Job{}, err
	}

	jobs := services.NewJobService(db)
	svc := services.NewInterviewService(llm, jobs, cfg.Interview, nil)

	job := practice.Job{ID: jobID, Title: "Job " + jobID}
	var id uint
	if _, err := fmt.Sscan(jobID, &id); err == nil {
		if found, err := jobs.GetJob(id); err == nil {
			job.Title = found.Title
			job.Company = found.Company.Name
		}
	}
	log.Printf("Using local database (%s) and LLM (%s)", cfg.DBDriver, cfg.LLMProvider)
	return svc, job, nil
}
