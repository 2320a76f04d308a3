package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/knowtest/internal/export"
	"github.com/abhisek/knowtest/internal/session"
	"github.com/abhisek/knowtest/internal/ui/components"
)

// runPlain drives the engine in line mode: options are numbered 1..n,
// n+1 is "I don't know", n+2 moves to the next topic and q saves and exits.
// End of input is treated like q.
func runPlain(ctx context.Context, engine *session.Engine, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)

	for {
		p, err := engine.NextPrompt()
		if errors.Is(err, session.ErrSessionComplete) {
			fmt.Fprintf(out, "\nAll topics done.\n\n")
			return export.WriteMarkdown(out, engine.Report())
		}
		if err != nil {
			return err
		}
		printPrompt(out, p)

		turn, err := readTurn(ctx, engine, sc, out, len(p.Options))
		if errors.Is(err, session.ErrQuit) {
			fmt.Fprintf(out, "\nProgress saved. Continue with: knowtest resume --name %s\n", p.TestName)
			return nil
		}
		if err != nil {
			return err
		}
		printTurn(out, turn, p.Options)
	}
}

// readTurn reads lines until one is an accepted action.
func readTurn(ctx context.Context, engine *session.Engine, sc *bufio.Scanner, out io.Writer, options int) (session.Turn, error) {
	for {
		fmt.Fprint(out, "> ")
		line := "q"
		if sc.Scan() {
			line = strings.TrimSpace(sc.Text())
		} else if err := sc.Err(); err != nil {
			return session.Turn{}, fmt.Errorf("read input: %w", err)
		}

		var action session.Action
		if strings.EqualFold(line, "q") {
			action = session.Quit{}
		} else {
			n, err := strconv.Atoi(line)
			if err != nil {
				fmt.Fprintf(out, "Enter a number from 1 to %d, or q to quit.\n", options+2)
				continue
			}
			if action, err = session.ActionForInput(n, options); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
		}

		turn, err := engine.Apply(ctx, action)
		if _, quit := action.(session.Quit); quit {
			return turn, err
		}
		var invalid *session.InvalidInputError
		var persist *session.PersistenceError
		switch {
		case errors.As(err, &invalid):
			fmt.Fprintln(out, invalid)
			continue
		case errors.As(err, &persist):
			// The answer counted; only the save failed.
			fmt.Fprintln(out, "Warning:", persist)
			return turn, nil
		}
		return turn, err
	}
}

func printPrompt(out io.Writer, p session.Prompt) {
	fmt.Fprintf(out, "\n%s · %s · question %d of %d\n", p.Topic.Title, p.Level, p.Position, p.LevelSize)
	fmt.Fprintf(out, "topic %s  level %s\n\n", textBar(p.Progress.Topic), textBar(p.Progress.Level))
	fmt.Fprintln(out, p.Question.Text)
	for i, opt := range p.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
	}
	n := len(p.Options)
	fmt.Fprintf(out, "  %d) %s\n  %d) %s\n", n+1, components.DontKnowLabel, n+2, components.SkipTopicLabel)
}

func printTurn(out io.Writer, t session.Turn, options []string) {
	switch t.Outcome {
	case session.OutcomeCorrect:
		fmt.Fprintln(out, "Correct!")
	case session.OutcomeIncorrect, session.OutcomeDontKnow:
		if t.CorrectChoice >= 0 && t.CorrectChoice < len(options) {
			fmt.Fprintf(out, "The answer is: %s\n", options[t.CorrectChoice])
		}
	case session.OutcomeSkipped:
		fmt.Fprintf(out, "Skipped the rest of %s.\n", t.Topic)
	}

	switch t.Verdict {
	case session.VerdictPassed:
		fmt.Fprintf(out, "%s level passed.\n", t.Level)
	case session.VerdictFailed:
		fmt.Fprintf(out, "%s level failed.\n", t.Level)
	case session.VerdictEndedUnmarked:
		fmt.Fprintf(out, "No questions left at %s.\n", t.Level)
	}
	if t.TopicChanged && !t.Complete {
		fmt.Fprintln(out, "Moving on to the next topic.")
	}
}

// textBar renders a fraction as "[#####-----]  50%".
func textBar(f float64) string {
	const width = 10
	filled := min(max(int(f*width), 0), width)
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat("-", width-filled), int(f*100))
}
