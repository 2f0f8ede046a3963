// Package main provides the CLI entrypoint for the gradebook demo
// harness. It feeds literal JSON inputs to the learner summary
// computation and prints the result; all scoring semantics live in
// internal/domain.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmulamak/go-gradebook/internal/domain"
)

var (
	computeCourseFile      string
	computeGroupFile       string
	computeSubmissionsFile string
	computeAt              string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gradebook",
		Short:         "Learner score aggregation harness",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newComputeCmd())

	return rootCmd
}

func newComputeCmd() *cobra.Command {
	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute per-learner summaries from JSON inputs",
		RunE:  runComputeCmd,
	}

	computeCmd.Flags().StringVar(&computeCourseFile, "course", "", "path to course JSON")
	computeCmd.Flags().StringVar(&computeGroupFile, "group", "", "path to assignment group JSON")
	computeCmd.Flags().StringVar(&computeSubmissionsFile, "submissions", "", "path to submissions JSON")
	computeCmd.Flags().StringVar(&computeAt, "at", "", "evaluate due dates as of this RFC 3339 instant (default: now)")

	for _, flag := range []string{"course", "group", "submissions"} {
		if err := computeCmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}

	return computeCmd
}

func runComputeCmd(_ *cobra.Command, _ []string) error {
	var course domain.Course
	if err := readJSONFile(computeCourseFile, &course); err != nil {
		return fmt.Errorf("failed to load course: %w", err)
	}

	var group domain.AssignmentGroup
	if err := readJSONFile(computeGroupFile, &group); err != nil {
		return fmt.Errorf("failed to load assignment group: %w", err)
	}

	var submissions []domain.Submission
	if err := readJSONFile(computeSubmissionsFile, &submissions); err != nil {
		return fmt.Errorf("failed to load submissions: %w", err)
	}

	opts := []domain.Option{
		domain.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
	}
	if computeAt != "" {
		at, err := time.Parse(time.RFC3339, computeAt)
		if err != nil {
			return fmt.Errorf("invalid --at instant: %w", err)
		}
		opts = append(opts, domain.WithClock(func() time.Time { return at }))
	}

	summaries, err := domain.ComputeLearnerSummaries(course, group, submissions, opts...)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summaries: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
