package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"qa-agent/internal/inference"
)

func TestIsQuitCommand(t *testing.T) {
	tests := []struct {
		line     string
		expected bool
	}{
		{"quit", true},
		{"exit", true},
		{"q", true},
		{"QUIT", true},
		{"Exit", true},
		{"", false},
		{"why quit", false},
		{"question", false},
	}

	for _, tt := range tests {
		if got := isQuitCommand(tt.line); got != tt.expected {
			t.Errorf("isQuitCommand(%q): expected %v, got %v", tt.line, tt.expected, got)
		}
	}
}

func TestAskWithRetriesRecovers(t *testing.T) {
	asker := new(inference.MockAsker)
	connRefused := inference.Outcome{Failure: &inference.Failure{
		Kind:   inference.FailureConnection,
		Detail: "could not connect to endpoint",
	}}
	asker.On("Ask", mock.Anything, "what is go", "token").Return(connRefused).Once()
	asker.On("Ask", mock.Anything, "what is go", "token").Return(inference.Outcome{Answer: "a language"}).Once()

	out := askWithRetries(context.Background(), asker, "what is go", "token", 2, time.Millisecond)

	if !out.OK() {
		t.Fatalf("expected recovery, got failure %+v", out.Failure)
	}
	if out.Answer != "a language" {
		t.Errorf("expected answer from retry, got %q", out.Answer)
	}
	asker.AssertExpectations(t)
}

func TestAskWithRetriesSkipsNonRetryable(t *testing.T) {
	asker := new(inference.MockAsker)
	apiErr := inference.Outcome{Failure: &inference.Failure{
		Kind:   inference.FailureAPI,
		Detail: "503: model loading",
	}}
	asker.On("Ask", mock.Anything, "what is go", "token").Return(apiErr).Once()

	out := askWithRetries(context.Background(), asker, "what is go", "token", 3, time.Millisecond)

	if out.OK() {
		t.Fatal("expected failure to pass through")
	}
	if out.Failure.Kind != inference.FailureAPI {
		t.Errorf("expected api failure, got %s", out.Failure.Kind)
	}
	asker.AssertExpectations(t) // exactly one call, no retries
}

func TestAskWithRetriesExhaustsBudget(t *testing.T) {
	asker := new(inference.MockAsker)
	timeout := inference.Outcome{Failure: &inference.Failure{
		Kind:   inference.FailureTimeout,
		Detail: "request exceeded time budget",
	}}
	asker.On("Ask", mock.Anything, "what is go", "token").Return(timeout).Times(3)

	out := askWithRetries(context.Background(), asker, "what is go", "token", 2, time.Millisecond)

	if out.OK() {
		t.Fatal("expected failure after exhausting retries")
	}
	if out.Failure.Kind != inference.FailureTimeout {
		t.Errorf("expected timeout failure, got %s", out.Failure.Kind)
	}
	asker.AssertExpectations(t)
}
