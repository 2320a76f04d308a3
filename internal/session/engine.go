package session

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/abhisek/knowtest/internal/catalog"
	"github.com/abhisek/knowtest/internal/logger"
)

// ExhaustedPolicy decides what happens when a level runs out of questions
// before either threshold is reached.
type ExhaustedPolicy int

const (
	// ExhaustEndUnmarked ends the level without a verdict and advances.
	ExhaustEndUnmarked ExhaustedPolicy = iota
	// ExhaustRecycle reshuffles the level and starts it over.
	ExhaustRecycle
)

// ParseExhaustedPolicy maps "end" and "recycle" to a policy.
func ParseExhaustedPolicy(s string) (ExhaustedPolicy, error) {
	switch s {
	case "end", "":
		return ExhaustEndUnmarked, nil
	case "recycle":
		return ExhaustRecycle, nil
	default:
		return 0, fmt.Errorf("unknown exhausted policy %q", s)
	}
}

// Policy holds the streak thresholds and exhausted-level behaviour.
type Policy struct {
	PassThreshold int
	FailThreshold int
	Exhausted     ExhaustedPolicy
}

// DefaultPolicy returns three-in-a-row thresholds that end exhausted levels
// unmarked.
func DefaultPolicy() Policy {
	return Policy{PassThreshold: 3, FailThreshold: 3, Exhausted: ExhaustEndUnmarked}
}

// Persister stores snapshots by test name.
type Persister interface {
	Save(ctx context.Context, testName string, snap *Snapshot) error
	Load(ctx context.Context, testName string) (*Snapshot, error)
}

// TurnObserver is notified after every accepted action.
type TurnObserver interface {
	ObserveTurn(ctx context.Context, testName string, turn Turn)
}

// TurnObserverFunc adapts a function to TurnObserver.
type TurnObserverFunc func(ctx context.Context, testName string, turn Turn)

func (f TurnObserverFunc) ObserveTurn(ctx context.Context, testName string, turn Turn) {
	f(ctx, testName, turn)
}

// Prompt is the question currently awaiting an answer.
type Prompt struct {
	TestName string
	Topic    *catalog.Topic
	Level    catalog.Level
	Question catalog.Question
	Options  []string

	// Position is the 1-based index of the question within the level order.
	Position  int
	LevelSize int

	Progress Progress
}

// Turn describes the effect of one accepted action.
type Turn struct {
	Topic      string
	Level      catalog.Level
	QuestionID string
	Outcome    Outcome
	Verdict    Verdict

	// Choice is the zero-based option picked, or -1 when none was.
	Choice int
	// CorrectChoice is the zero-based right option, or -1 for SkipTopic.
	CorrectChoice int

	TopicChanged bool
	Complete     bool
}

// Engine drives a session: it serves questions from the catalog, applies
// user actions to the state it owns and persists the state after every
// accepted action. Its methods may be called from several goroutines;
// calls are serialized.
type Engine struct {
	mu sync.Mutex
	// unsaved is true while the state differs from the last successful save.
	unsaved bool

	cat       *catalog.Catalog
	state     *State
	policy    Policy
	persister Persister
	observers []TurnObserver
	rng       *rand.Rand
	log       *logger.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy sets thresholds and the exhausted-level policy.
func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithPersister sets where snapshots are saved. Without one the session
// lives only in memory.
func WithPersister(p Persister) Option {
	return func(e *Engine) { e.persister = p }
}

// WithRand sets the source used to shuffle level questions.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLogger sets the engine logger.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithObserver registers a TurnObserver.
func WithObserver(o TurnObserver) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// NewEngine creates an engine over cat that owns state. The state is moved
// to the first askable question (passed and empty levels are skipped).
func NewEngine(cat *catalog.Catalog, state *State, opts ...Option) *Engine {
	e := &Engine{
		cat:     cat,
		state:   state,
		policy:  DefaultPolicy(),
		unsaved: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.log == nil {
		e.log = logger.Nop()
	}
	if state.Results == nil {
		state.Results = make(map[string]*TopicResult)
	}
	e.state.order = nil
	e.settle()
	return e
}

// State returns the state the engine owns. Callers must not mutate it.
func (e *Engine) State() *State {
	return e.state
}

// Catalog returns the catalog the engine serves from.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// Progress returns topic and level progress for the current position.
func (e *Engine) Progress() Progress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return MeasureProgress(e.cat, e.state)
}

// Report builds the score report for the session so far.
func (e *Engine) Report() *Report {
	e.mu.Lock()
	defer e.mu.Unlock()
	return BuildReport(e.cat, e.state)
}

// NextPrompt returns the question awaiting an answer, or ErrSessionComplete.
func (e *Engine) NextPrompt() (Prompt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state
	if st.Complete() {
		return Prompt{}, ErrSessionComplete
	}
	topic, _ := e.cat.Topic(st.CurrentTopic())
	q := st.order[st.QuestionIndex]
	cs, _ := topic.Choices(q.ID)
	return Prompt{
		TestName:  st.TestName,
		Topic:     topic,
		Level:     st.Level,
		Question:  q,
		Options:   cs.Options,
		Position:  st.QuestionIndex + 1,
		LevelSize: len(st.order),
		Progress:  MeasureProgress(e.cat, st),
	}, nil
}

// Apply performs one action. Answer, DontKnow and SkipTopic advance the
// state and save it exactly once; a failed save is returned as a
// *PersistenceError with the state already advanced. Quit saves and returns
// ErrQuit without changing the state.
func (e *Engine) Apply(ctx context.Context, action Action) (Turn, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := action.(Quit); ok {
		if err := e.save(ctx); err != nil {
			return Turn{}, err
		}
		e.log.Info("session quit", "test", e.state.TestName)
		return Turn{}, ErrQuit
	}

	st := e.state
	if st.Complete() {
		return Turn{}, ErrSessionComplete
	}

	topic, _ := e.cat.Topic(st.CurrentTopic())
	q := st.order[st.QuestionIndex]
	cs, _ := topic.Choices(q.ID)

	turn := Turn{
		Topic:         topic.Name,
		Level:         st.Level,
		QuestionID:    q.ID,
		Choice:        -1,
		CorrectChoice: cs.Correct,
	}
	topicBefore := st.TopicIndex

	switch a := action.(type) {
	case Answer:
		if a.Choice < 0 || a.Choice >= len(cs.Options) {
			return Turn{}, &InvalidInputError{Choice: a.Choice, Options: len(cs.Options)}
		}
		turn.Choice = a.Choice
		if cs.IsCorrect(a.Choice) {
			turn.Outcome = OutcomeCorrect
		} else {
			turn.Outcome = OutcomeIncorrect
		}
		turn.Verdict = e.recordAnswer(turn.Outcome == OutcomeCorrect)
	case DontKnow:
		turn.Outcome = OutcomeDontKnow
		turn.Verdict = e.recordAnswer(false)
	case SkipTopic:
		turn.Outcome = OutcomeSkipped
		turn.CorrectChoice = -1
		st.nextTopic()
	default:
		return Turn{}, fmt.Errorf("unsupported action %T", action)
	}

	e.settle()
	e.unsaved = true
	turn.TopicChanged = st.TopicIndex != topicBefore
	turn.Complete = st.Complete()

	e.log.Debug("turn applied",
		"test", st.TestName,
		"topic", turn.Topic,
		"level", int(turn.Level),
		"outcome", turn.Outcome.String(),
		"verdict", turn.Verdict.String(),
	)

	saveErr := e.save(ctx)
	for _, o := range e.observers {
		o.ObserveTurn(ctx, st.TestName, turn)
	}
	return turn, saveErr
}

// recordAnswer updates counters for one answer and applies the thresholds.
// Failure is checked before pass.
func (e *Engine) recordAnswer(correct bool) Verdict {
	st := e.state
	res := st.resultFor(st.CurrentTopic())
	level := st.Level

	res.Answered[level]++
	if correct {
		st.ConsecutiveCorrect++
		st.ConsecutiveIncorrect = 0
		res.Correct[level]++
	} else {
		st.ConsecutiveIncorrect++
		st.ConsecutiveCorrect = 0
	}
	st.QuestionIndex++

	switch {
	case st.ConsecutiveIncorrect >= e.policy.FailThreshold:
		st.nextLevel()
		return VerdictFailed
	case st.ConsecutiveCorrect >= e.policy.PassThreshold:
		res.PassedLevels[level] = true
		st.nextLevel()
		return VerdictPassed
	case st.QuestionIndex >= len(st.order):
		if e.policy.Exhausted == ExhaustRecycle {
			e.enterLevel(st.order)
			return VerdictNone
		}
		st.nextLevel()
		return VerdictEndedUnmarked
	default:
		return VerdictNone
	}
}

// settle moves the state forward until it rests on an askable question or
// the session is complete. Passed levels, empty levels and topics missing
// from the catalog are skipped.
func (e *Engine) settle() {
	st := e.state
	for !st.Complete() {
		name := st.CurrentTopic()
		topic, ok := e.cat.Topic(name)
		if !ok {
			e.log.Warn("topic missing from catalog, skipping", "topic", name)
			st.nextTopic()
			continue
		}
		res := st.resultFor(topic.Name)

		if st.Level > catalog.MaxLevel {
			st.nextTopic()
			continue
		}
		if st.Level < catalog.MinLevel {
			st.Level = catalog.MinLevel
		}
		if res.Passed(st.Level) {
			st.nextLevel()
			continue
		}

		questions := topic.QuestionsAt(st.Level)
		if len(questions) == 0 {
			st.nextLevel()
			continue
		}
		if st.order == nil {
			// Resuming keeps QuestionIndex but draws a new order.
			idx := st.QuestionIndex
			e.enterLevel(questions)
			st.QuestionIndex = idx
		}
		if st.QuestionIndex >= len(st.order) {
			if e.policy.Exhausted == ExhaustRecycle {
				e.enterLevel(questions)
				continue
			}
			st.nextLevel()
			continue
		}
		return
	}
	st.order = nil
}

// enterLevel shuffles questions into a new order and starts at the top.
func (e *Engine) enterLevel(questions []catalog.Question) {
	order := make([]catalog.Question, len(questions))
	copy(order, questions)
	e.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	e.state.order = order
	e.state.QuestionIndex = 0
}

// Complete reports whether every topic has been processed.
func (e *Engine) Complete() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Complete()
}

// Flush saves the state if it changed since the last successful save,
// e.g. a new session nobody answered yet or one whose last save failed.
func (e *Engine) Flush(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.unsaved {
		return nil
	}
	return e.save(ctx)
}

func (e *Engine) save(ctx context.Context) error {
	if e.persister == nil {
		return nil
	}
	st := e.state
	if err := e.persister.Save(ctx, st.TestName, TakeSnapshot(st)); err != nil {
		e.log.Error("save failed", "test", st.TestName, "error", err)
		return &PersistenceError{Op: "save", Name: st.TestName, Err: err}
	}
	e.unsaved = false
	return nil
}
