package quiz

import (
	"context"
	"errors"
)

// Session lifecycle states. A failed submission re-enters StateInProgress at
// the last step so the user can retry with every response intact.
type State string

const (
	StateInProgress State = "in_progress"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
)

var (
	// ErrUnanswered guards forward navigation: the current step has no
	// recorded response yet.
	ErrUnanswered = errors.New("current question not answered")

	// ErrTransitionLocked debounces navigation while a step transition is
	// still animating.
	ErrTransitionLocked = errors.New("transition in progress")

	// ErrSubmitInFlight rejects re-entrant submission.
	ErrSubmitInFlight = errors.New("submission already in flight")

	// ErrSessionClosed rejects operations after completion.
	ErrSessionClosed = errors.New("session already completed")
)

// Step is one unit of quiz progress: a single question, or a mission's
// primary/secondary pair. The secondary question is revealed only once the
// primary has a response, and forward navigation requires both.
type Step struct {
	Primary   *Question
	Secondary *Question
}

// Response is one recorded answer in wire form.
type Response struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"selectedOption"`
}

// Result is what the server returns for a successful submission; from then on
// the server owns the authoritative score.
type Result struct {
	SessionID    string
	OverallScore float64
}

// Submitter is the external submission boundary.
type Submitter interface {
	Submit(ctx context.Context, responses []Response) (*Result, error)
}

// Milestone percentages that trigger a one-time encouragement notice.
var milestones = [...]int{25, 50, 75}

// Session is the quiz-taking state machine. It owns the in-progress response
// mapping; interaction engines are throwaway views that read a response
// string and hand back a new one.
//
// Session is not safe for concurrent use; it models a single event loop.
type Session struct {
	steps     []Step
	index     int
	responses map[string]string
	shown     map[int]bool
	animating bool
	state     State

	submitter   Submitter
	onMilestone func(percent int)

	result  *Result
	lastErr error
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithMilestoneNotifier installs a callback fired at most once per session
// for each of the 25/50/75 percent answered milestones.
func WithMilestoneNotifier(fn func(percent int)) SessionOption {
	return func(s *Session) { s.onMilestone = fn }
}

// NewSession creates an in-progress session over an already-fetched step
// list. Submission goes through submitter when the last step is passed.
func NewSession(steps []Step, submitter Submitter, opts ...SessionOption) *Session {
	s := &Session{
		steps:     steps,
		responses: make(map[string]string),
		shown:     make(map[int]bool),
		state:     StateInProgress,
		submitter: submitter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer records the encoded answer for a question. It never moves the
// cursor. Recording an answer may cross a completion milestone.
func (s *Session) Answer(questionID, encoded string) error {
	if s.state == StateCompleted {
		return ErrSessionClosed
	}
	if !s.hasQuestion(questionID) {
		return errors.New("question not part of this session")
	}
	s.responses[questionID] = encoded
	s.checkMilestones()
	return nil
}

// Response returns the recorded answer for a question, if any.
func (s *Session) Response(questionID string) (string, bool) {
	v, ok := s.responses[questionID]
	return v, ok
}

// Next advances to the following step, or submits when the current step is
// the last one. It is guarded: the current step (including a mission's
// secondary question) must be answered, and no transition may be in flight.
func (s *Session) Next(ctx context.Context) error {
	if s.state == StateCompleted {
		return ErrSessionClosed
	}
	if s.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	if s.animating {
		return ErrTransitionLocked
	}
	if !s.stepAnswered(s.index) {
		return ErrUnanswered
	}
	if s.index == len(s.steps)-1 {
		return s.Submit(ctx)
	}
	s.index++
	s.animating = true
	return nil
}

// Previous steps back one step. Backward navigation is never gated by answer
// state, only by the transition lock and an in-flight submission.
func (s *Session) Previous() error {
	if s.state == StateCompleted {
		return ErrSessionClosed
	}
	if s.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	if s.animating {
		return ErrTransitionLocked
	}
	if s.index > 0 {
		s.index--
		s.animating = true
	}
	return nil
}

// EndTransition releases the navigation lock once the UI transition window
// has elapsed.
func (s *Session) EndTransition() { s.animating = false }

// Submit packages every recorded response and hands it to the submitter.
// While a submission is outstanding further submits (and navigation into a
// submit) are rejected. On failure the session returns to in-progress with
// all responses preserved; on success it completes and discards them.
func (s *Session) Submit(ctx context.Context) error {
	switch s.state {
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateCompleted:
		return ErrSessionClosed
	}
	s.state = StateSubmitting
	s.lastErr = nil

	result, err := s.submitter.Submit(ctx, s.ResponseList())
	if err != nil {
		s.state = StateInProgress
		s.lastErr = err
		return err
	}
	s.state = StateCompleted
	s.result = result
	s.responses = make(map[string]string)
	return nil
}

// ResponseList returns the recorded responses in step/question order, which
// keeps the submission payload deterministic.
func (s *Session) ResponseList() []Response {
	out := make([]Response, 0, len(s.responses))
	s.eachQuestion(func(q *Question) {
		if v, ok := s.responses[q.ID]; ok {
			out = append(out, Response{QuestionID: q.ID, Value: v})
		}
	})
	return out
}

// CurrentStep returns the step at the cursor.
func (s *Session) CurrentStep() Step { return s.steps[s.index] }

// CurrentIndex returns the cursor position.
func (s *Session) CurrentIndex() int { return s.index }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Err returns the last submission error, if the session is in a retryable
// failed state.
func (s *Session) Err() error { return s.lastErr }

// Result returns the server-issued result after completion.
func (s *Session) Result() *Result { return s.result }

// SecondaryVisible reports whether the current step's secondary question
// should be shown, i.e. the primary has a response.
func (s *Session) SecondaryVisible() bool {
	step := s.steps[s.index]
	if step.Secondary == nil {
		return false
	}
	_, ok := s.responses[step.Primary.ID]
	return ok
}

// AnsweredCount returns how many of the session's questions have responses.
func (s *Session) AnsweredCount() int {
	n := 0
	s.eachQuestion(func(q *Question) {
		if _, ok := s.responses[q.ID]; ok {
			n++
		}
	})
	return n
}

// TotalQuestions counts every question across all steps, secondary questions
// included.
func (s *Session) TotalQuestions() int {
	n := 0
	s.eachQuestion(func(*Question) { n++ })
	return n
}

func (s *Session) stepAnswered(i int) bool {
	step := s.steps[i]
	if _, ok := s.responses[step.Primary.ID]; !ok {
		return false
	}
	if step.Secondary != nil {
		if _, ok := s.responses[step.Secondary.ID]; !ok {
			return false
		}
	}
	return true
}

func (s *Session) checkMilestones() {
	total := s.TotalQuestions()
	if total == 0 {
		return
	}
	percent := s.AnsweredCount() * 100 / total
	for _, m := range milestones {
		if percent >= m && !s.shown[m] {
			s.shown[m] = true
			if s.onMilestone != nil {
				s.onMilestone(m)
			}
		}
	}
}

func (s *Session) hasQuestion(id string) bool {
	found := false
	s.eachQuestion(func(q *Question) {
		if q.ID == id {
			found = true
		}
	})
	return found
}

func (s *Session) eachQuestion(fn func(*Question)) {
	for _, step := range s.steps {
		if step.Primary != nil {
			fn(step.Primary)
		}
		if step.Secondary != nil {
			fn(step.Secondary)
		}
	}
}
