package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"qa-agent/internal/app"
	"qa-agent/internal/inference"
	"qa-agent/internal/logger"
	"qa-agent/internal/normalize"
	"qa-agent/internal/retry"
)

const (
	retryBaseDelay = time.Second
	retryMaxDelay  = 30 * time.Second
)

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	deps.Log = logger.ForService(deps.Log, "cli")

	in := bufio.NewScanner(os.Stdin)

	credential := deps.Config.APIKey
	if credential == "" {
		fmt.Println("No HUGGINGFACE_API_KEY found in environment.")
		credential, _ = promptLine(in, "Enter your Hugging Face API key: ")
	}
	if credential == "" {
		fmt.Println("Error: an API key is required.")
		os.Exit(1)
	}

	printBanner(deps.Config.Model)
	deps.Log.Debug("cli ready", "model", deps.Config.Model, "ask_retries", deps.Config.AskRetries)
	runLoop(deps, in, credential)
}

func runLoop(deps app.Deps, in *bufio.Scanner, credential string) {
	for {
		question, ok := promptLine(in, "Enter your question: ")
		if !ok || isQuitCommand(question) {
			fmt.Println("\nGoodbye!")
			return
		}
		if question == "" {
			fmt.Println("Please enter a valid question.")
			continue
		}

		res := normalize.Process(question, deps.NormalizeMode())
		printPreprocessing(question, res)
		if res.Text == "" {
			fmt.Println("Nothing left to ask after normalization.")
			continue
		}

		fmt.Println("[Querying model...]")
		out := askWithRetries(context.Background(), deps.Asker, res.Text, credential, deps.Config.AskRetries, retryBaseDelay)
		printOutcome(out)
	}
}

// askWithRetries re-invokes Ask up to retries extra times. The client
// itself never retries; re-asking is this caller's choice, and only for
// transport-level failures.
func askWithRetries(ctx context.Context, asker inference.Asker, question, credential string, retries int, baseDelay time.Duration) inference.Outcome {
	out := asker.Ask(ctx, question, credential)
	for attempt := 0; attempt < retries && !out.OK() && out.Failure.Retryable(); attempt++ {
		delay := retry.ExponentialBackoff(attempt, baseDelay, retryMaxDelay)
		fmt.Printf("[%s — retrying in %s]\n", out.Failure.Kind, delay)
		time.Sleep(delay)
		out = asker.Ask(ctx, question, credential)
	}
	return out
}

func isQuitCommand(line string) bool {
	switch strings.ToLower(line) {
	case "quit", "exit", "q":
		return true
	}
	return false
}

// promptLine prints a prompt and reads one trimmed line. ok is false
// when stdin is exhausted.
func promptLine(in *bufio.Scanner, prompt string) (string, bool) {
	fmt.Print(prompt)
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}

func printBanner(model string) {
	rule := strings.Repeat("=", 60)
	fmt.Println(rule)
	fmt.Println("Question-and-Answering System (CLI)")
	fmt.Println("Model:", model)
	fmt.Println(rule)
	fmt.Println("\nType 'quit' or 'exit' to stop.")
	fmt.Println()
}

func printPreprocessing(original string, res normalize.Result) {
	fmt.Println("\n[Preprocessing]")
	fmt.Printf("Original: %s\n", original)
	fmt.Printf("Normalized: %s\n", res.Text)
	fmt.Printf("Tokens: %v\n", res.Tokens)
	fmt.Printf("Token count: %d\n\n", res.TokenCount())
}

func printOutcome(out inference.Outcome) {
	rule := strings.Repeat("=", 60)
	fmt.Println("\n" + rule)
	if out.OK() {
		fmt.Println("ANSWER:")
		fmt.Println(rule)
		fmt.Println(out.Answer)
	} else {
		fmt.Println("ERROR:")
		fmt.Println(rule)
		fmt.Printf("%s: %s\n", out.Failure.Kind, out.Failure.Detail)
	}
	fmt.Println(rule + "\n")
}
