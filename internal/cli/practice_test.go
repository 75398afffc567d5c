package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/jobs/7":
			w.Write([]byte(`{"id": 7, "title": "Go Developer", "company": "Acme"}`))
		case "/interview/generate-questions":
			w.Write([]byte(`{"questions": [{"question": "What is a channel?", "category": "technical", "difficulty": "easy"}]}`))
		case "/interview/get-feedback":
			w.Write([]byte(`{"question": "What is a channel?", "user_answer": "A pipe", "feedback": "Thin.", "score": 5,
				"improvement_suggestions": [], "ideal_points": ["Buffered vs unbuffered"]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	practiceCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPracticeCommandExportsReview(t *testing.T) {
	srv := fakeAPI(t)
	path := filepath.Join(t.TempDir(), "review.xlsx")

	out, err := runCLI(t, "\nA pipe\n/quit\n", "practice", "--job-id", "7", "--api-url", srv.URL, "--export", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Interview practice: Go Developer at Acme")
	assert.Contains(t, out, "Score: 5/10 (weak)")
	assert.Contains(t, out, "Review saved to "+path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	company, err := f.GetCellValue("Summary", "B4")
	require.NoError(t, err)
	assert.Equal(t, "Acme", company)
}

func TestPracticeCommandTitleOverride(t *testing.T) {
	srv := fakeAPI(t)

	out, err := runCLI(t, "/quit\n", "practice", "--job-id", "7", "--api-url", srv.URL, "--title", "Gopher", "--company", "Initech")
	require.NoError(t, err)
	assert.Contains(t, out, "Interview practice: Gopher at Initech")
	assert.NotContains(t, out, "Review saved")
}

func TestPracticeCommandRequiresJobID(t *testing.T) {
	_, err := runCLI(t, "", "practice")
	assert.Error(t, err)
}
