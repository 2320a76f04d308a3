package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/abhisek/knowtest/internal/catalog"
	"github.com/abhisek/knowtest/internal/session"
)

// WriteMarkdown renders the report as a markdown document: one section per
// topic with a level score table.
func WriteMarkdown(w io.Writer, r *session.Report) error {
	ew := &errWriter{w: w}

	status := "in progress"
	if r.Complete {
		status = "complete"
	}
	ew.printf("# Results: %s\n\n", r.TestName)
	ew.printf("Status: %s. Topics with a passed level: %d of %d.\n", status, r.PassedTopics(), len(r.Topics))

	for _, t := range r.Topics {
		ew.printf("\n## %s\n\n", t.Title)
		if !t.Started {
			ew.printf("Not started.\n")
			continue
		}
		ew.printf("- Levels passed: %s\n", levelList(t))
		ew.printf("- Highest passed level: %s\n", levelName(int(t.Highest)))
		ew.printf("- Highest level above 50%%: %s\n\n", levelName(int(t.HighestByRatio)))
		ew.printf("| Level | Correct | Answered | Score | Passed |\n")
		ew.printf("|---|---|---|---|---|\n")
		for _, l := range t.Levels {
			if !l.Started {
				ew.printf("| %s | - | - | not started | %s |\n", l.Level, yesNo(l.Passed))
				continue
			}
			ew.printf("| %s | %d | %d | %.0f%% | %s |\n",
				l.Level, l.Score.Correct, l.Score.Answered, l.Score.Ratio()*100, yesNo(l.Passed))
		}
	}
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func levelName(l int) string {
	if l == 0 {
		return "None"
	}
	return catalog.Level(l).String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}
