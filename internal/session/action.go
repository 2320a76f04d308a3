package session

// Action is one user move. The set of actions is closed: Answer, DontKnow,
// SkipTopic and Quit.
type Action interface {
	isAction()
}

// Answer selects an option by zero-based index.
type Answer struct {
	Choice int
}

// DontKnow counts as an incorrect answer.
type DontKnow struct{}

// SkipTopic abandons the remaining levels of the current topic.
type SkipTopic struct{}

// Quit saves the session and stops.
type Quit struct{}

func (Answer) isAction()    {}
func (DontKnow) isAction()  {}
func (SkipTopic) isAction() {}
func (Quit) isAction()      {}

// Outcome classifies an accepted action.
type Outcome int

const (
	OutcomeCorrect Outcome = iota
	OutcomeIncorrect
	OutcomeDontKnow
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	case OutcomeDontKnow:
		return "dont_know"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Verdict is what happened to the level an action was taken on.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictPassed
	VerdictFailed
	VerdictEndedUnmarked
)

func (v Verdict) String() string {
	switch v {
	case VerdictNone:
		return "none"
	case VerdictPassed:
		return "passed"
	case VerdictFailed:
		return "failed"
	case VerdictEndedUnmarked:
		return "ended_unmarked"
	default:
		return "unknown"
	}
}

// ActionForInput maps a 1-based menu number to an action for a question
// with the given number of options: 1..n answer, n+1 is DontKnow and n+2
// is SkipTopic. Anything else is an *InvalidInputError.
func ActionForInput(n, options int) (Action, error) {
	switch {
	case n >= 1 && n <= options:
		return Answer{Choice: n - 1}, nil
	case n == options+1:
		return DontKnow{}, nil
	case n == options+2:
		return SkipTopic{}, nil
	default:
		return nil, &InvalidInputError{Choice: n - 1, Options: options}
	}
}
