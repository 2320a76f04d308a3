package quiz

import sess "github.com/abhisek/knowtest/internal/session"

// promptMsg carries the next question, or ErrSessionComplete.
type promptMsg struct {
	prompt sess.Prompt
	err    error
}

// turnMsg carries the result of applying an answer action.
type turnMsg struct {
	turn sess.Turn
	err  error
}

// quitMsg is sent once the session was saved on quit.
type quitMsg struct {
	err error
}
