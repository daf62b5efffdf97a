package db

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Step is one independent maintenance operation. A failing step does not
// stop the steps after it.
type Step struct {
	Name string
	Run  func(ctx context.Context, d *DB) (string, error)
}

type StepStatus string

const (
	StepOK     StepStatus = "ok"
	StepFailed StepStatus = "failed"
)

type StepResult struct {
	Name     string
	Status   StepStatus
	Detail   string
	Err      error
	Duration time.Duration
}

// Report aggregates the outcome of a RunSteps call.
type Report struct {
	Results []StepResult
}

func (r Report) Failed() []StepResult {
	var out []StepResult
	for _, res := range r.Results {
		if res.Status == StepFailed {
			out = append(out, res)
		}
	}
	return out
}

func (r Report) OK() bool {
	return len(r.Failed()) == 0
}

// Err summarises every failed step, or returns nil.
func (r Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(failed))
	for _, f := range failed {
		msgs = append(msgs, fmt.Sprintf("%s: %v", f.Name, f.Err))
	}
	return fmt.Errorf("%d of %d steps failed: %s", len(failed), len(r.Results), strings.Join(msgs, "; "))
}

// Log writes one record per step and a summary line.
func (r Report) Log(l *slog.Logger) {
	for _, res := range r.Results {
		attrs := []any{
			slog.String("step", res.Name),
			slog.String("status", string(res.Status)),
			slog.Duration("duration", res.Duration),
		}
		if res.Detail != "" {
			attrs = append(attrs, slog.String("detail", res.Detail))
		}
		if res.Err != nil {
			l.Error("step failed", append(attrs, slog.Any("err", res.Err))...)
			continue
		}
		l.Info("step completed", attrs...)
	}
	l.Info("steps finished", slog.Int("total", len(r.Results)), slog.Int("failed", len(r.Failed())))
}

// RunSteps runs every step in order and collects their results.
func RunSteps(ctx context.Context, d *DB, steps []Step) Report {
	report := Report{Results: make([]StepResult, 0, len(steps))}
	for _, s := range steps {
		start := time.Now()
		detail, err := runStep(ctx, d, s)
		res := StepResult{Name: s.Name, Status: StepOK, Detail: detail, Err: err, Duration: time.Since(start)}
		if err != nil {
			res.Status = StepFailed
		}
		report.Results = append(report.Results, res)
	}
	return report
}

func runStep(ctx context.Context, d *DB, s Step) (detail string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return s.Run(ctx, d)
}
