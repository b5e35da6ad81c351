package quiz

import "time"

// questionReadyMsg is sent when a question has been generated (or the
// attempt failed).
type questionReadyMsg struct {
	Err error
}

// quizDoneMsg is sent when the final question has been answered and the
// session is finished.
type quizDoneMsg struct{}

// timerTickMsg drives the one-second countdown.
type timerTickMsg time.Time
