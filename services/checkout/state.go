package checkout

import (
	"go.uber.org/zap"
)

// State is a step of a submission attempt.
type State string

const (
	StateIdle                    State = "idle"
	StateValidating              State = "validating"
	StatePersistingOrder         State = "persisting_order"
	StateCreatingCheckoutSession State = "creating_checkout_session"
	StateRedirectingToPayment    State = "redirecting_to_payment"
	StateSucceeded               State = "succeeded"
	StateFailed                  State = "failed"
)

// Attempt records the progress of one submission.
type Attempt struct {
	SubmissionID string
	State        State
	Transitions  []State
	OrderID      string
	SessionID    string
	RedirectURL  string
	Reused       bool
	Err          error

	logger *zap.Logger
}

func newAttempt(submissionID string, logger *zap.Logger) *Attempt {
	return &Attempt{
		SubmissionID: submissionID,
		State:        StateIdle,
		Transitions:  []State{StateIdle},
		logger:       logger.With(zap.String("submissionId", submissionID)),
	}
}

func (a *Attempt) advance(next State) {
	a.logger.Debug("checkout transition",
		zap.String("from", string(a.State)),
		zap.String("to", string(next)),
		zap.String("orderId", a.OrderID))
	a.State = next
	a.Transitions = append(a.Transitions, next)
}

func (a *Attempt) fail(err error) *Attempt {
	a.Err = err
	a.logger.Warn("checkout failed",
		zap.String("step", string(a.State)),
		zap.String("orderId", a.OrderID),
		zap.Error(err))
	a.advance(StateFailed)
	return a
}

// Result returns the outcome of a succeeded attempt.
func (a *Attempt) Result() *Result {
	if a.State != StateSucceeded {
		return nil
	}
	return &Result{OrderID: a.OrderID, SessionID: a.SessionID, RedirectURL: a.RedirectURL, Reused: a.Reused}
}
