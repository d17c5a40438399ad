// Generates an example live-view HTML page and writes it to stdout.
// Usage: go run ./render/html/cmd/example > example.html
package main

import (
	"os"
	"time"

	"github.com/sonnes/chaukidar/core"
	htmlrender "github.com/sonnes/chaukidar/render/html"
)

func main() {
	now := time.Now().UTC()
	stamp := func(ago time.Duration) string { return now.Add(-ago).Format(time.RFC3339) }

	s := core.Snapshot{
		{
			Prompt:    "What is the capital of France?",
			Answer:    "The capital of France is **Paris**.",
			Timestamp: stamp(40 * time.Minute),
		},
		{
			Prompt:    "How do I reverse a slice in Go?",
			Answer:    "Since Go 1.21 the standard library has `slices.Reverse`:\n\n```go\ns := []int{1, 2, 3}\nslices.Reverse(s)\nfmt.Println(s) // [3 2 1]\n```",
			Timestamp: stamp(12 * time.Minute),
		},
		{
			Prompt:    "List three HTTP methods that are idempotent.",
			Answer:    "| Method | Safe |\n|---|---|\n| GET | yes |\n| PUT | no |\n| DELETE | no |",
			Timestamp: stamp(30 * time.Second),
		},
	}
	st := core.Status{
		Loaded:    true,
		UpdatedAt: now.Add(-2 * time.Second),
		Interval:  3 * time.Second,
		Fetches:   42,
		Failures:  1,
		LastError: "Get \"http://prompt-answers.my-demo.com/api/exchanges\": dial tcp: connection refused",
	}

	r := htmlrender.New()
	if err := r.Render(os.Stdout, s, st); err != nil {
		os.Stderr.WriteString("error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
