package inference

import "context"

// Asker is a minimal inference interface to allow pluggable providers.
type Asker interface {
	// Ask sends one question to the hosted model and reports the result
	// as an Outcome. It never returns a Go error: every failure mode is
	// classified and carried inside the Outcome.
	Ask(ctx context.Context, question, credential string) Outcome
}

// FailureKind classifies why an inference call produced no answer.
type FailureKind string

const (
	// FailureConnection means no response was received because the
	// endpoint could not be reached.
	FailureConnection FailureKind = "connection_error"
	// FailureTimeout means the call exceeded its time budget.
	FailureTimeout FailureKind = "timeout"
	// FailureAPI means the endpoint answered with a non-200 status.
	FailureAPI FailureKind = "api_error"
	// FailureInvalidResponse means a 200 body did not have the expected
	// shape (a non-empty JSON array of generation records).
	FailureInvalidResponse FailureKind = "invalid_response"
	// FailureUnexpected covers everything else that went wrong during
	// the exchange.
	FailureUnexpected FailureKind = "unexpected_error"
)

// Failure describes a classified inference error.
type Failure struct {
	Kind   FailureKind
	Detail string
}

// Retryable reports whether re-asking could plausibly help. Only
// transport-level failures qualify; an API or shape error will repeat.
func (f *Failure) Retryable() bool {
	return f.Kind == FailureConnection || f.Kind == FailureTimeout
}

// Outcome is the tagged result of one inference call. Exactly one of
// Answer or Failure is meaningful; OK reports which.
type Outcome struct {
	Answer  string
	Failure *Failure
}

// OK reports whether the call produced an answer.
func (o Outcome) OK() bool { return o.Failure == nil }

func answer(text string) Outcome {
	return Outcome{Answer: text}
}

func failure(kind FailureKind, detail string) Outcome {
	return Outcome{Failure: &Failure{Kind: kind, Detail: detail}}
}
