package core

import "strings"

// OutcomeStatus tells a generated review apart from a degraded one.
type OutcomeStatus string

const (
	StatusOK       OutcomeStatus = "ok"
	StatusDegraded OutcomeStatus = "degraded"
)

// FeedbackErrorPrefix starts the feedback text of every degraded outcome.
const FeedbackErrorPrefix = "Error getting feedback: "

// Outcome is what the review generator produced for one snippet.
// Exactly one of the two shapes is valid: Status ok with provider text in
// Feedback, or Status degraded with a non-empty Reason.
type Outcome struct {
	Status   OutcomeStatus
	Feedback string
	Reason   string
}

// Succeeded wraps provider text as a successful outcome.
func Succeeded(text string) Outcome {
	return Outcome{Status: StatusOK, Feedback: text}
}

// Failed builds a degraded outcome. The feedback text is the reason behind
// FeedbackErrorPrefix so that callers reading only the text still see it.
func Failed(reason string) Outcome {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "unknown error"
	}
	return Outcome{
		Status:   StatusDegraded,
		Feedback: FeedbackErrorPrefix + reason,
		Reason:   reason,
	}
}

// Degraded reports whether the provider call failed.
func (o Outcome) Degraded() bool {
	return o.Status == StatusDegraded
}
