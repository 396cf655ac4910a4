package batch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestRunCountsOutcomes(t *testing.T) {
	t.Parallel()

	paths := []string{"a.gif", "b.gif", "c.gif", "d.gif"}
	failed := errors.New("bad file")

	summary := Run(context.Background(), paths, 2, func(path string) (bool, error) {
		switch path {
		case "b.gif":
			return false, failed
		case "c.gif":
			return true, nil
		default:
			return false, nil
		}
	})

	if summary.Processed != 3 {
		t.Fatalf("processed: got=%d want 3", summary.Processed)
	}
	if summary.NoOp != 1 {
		t.Fatalf("noop: got=%d want 1", summary.NoOp)
	}
	if summary.Skipped() != 1 {
		t.Fatalf("skipped: got=%d want 1", summary.Skipped())
	}
	if summary.Skips[0].Path != "b.gif" || !errors.Is(summary.Skips[0].Err, failed) {
		t.Fatalf("skip record wrong: %+v", summary.Skips[0])
	}
}

func TestRunProcessesEveryPathOnce(t *testing.T) {
	t.Parallel()

	paths := make([]string, 50)
	for i := range paths {
		paths[i] = string(rune('a' + i%26))
	}

	var calls atomic.Int64
	summary := Run(context.Background(), paths, 8, func(string) (bool, error) {
		calls.Add(1)
		return false, nil
	})

	if got := calls.Load(); got != 50 {
		t.Fatalf("calls: got=%d want 50", got)
	}
	if summary.Processed != 50 {
		t.Fatalf("processed: got=%d want 50", summary.Processed)
	}
}

func TestRunCancelledContextSchedulesNothing(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int64
	summary := Run(ctx, []string{"a", "b", "c"}, 2, func(string) (bool, error) {
		calls.Add(1)
		return false, nil
	})

	if got := calls.Load(); got != 0 {
		t.Fatalf("cancelled run still scheduled %d images", got)
	}
	if summary.Processed != 0 || summary.Skipped() != 0 {
		t.Fatalf("cancelled run produced summary %+v", summary)
	}
}

func TestRunMoreWorkersThanJobs(t *testing.T) {
	t.Parallel()

	summary := Run(context.Background(), []string{"only"}, 16, func(string) (bool, error) {
		return false, nil
	})
	if summary.Processed != 1 {
		t.Fatalf("processed: got=%d want 1", summary.Processed)
	}

	// Zero paths is a clean empty run.
	summary = Run(context.Background(), nil, 4, func(string) (bool, error) {
		return false, nil
	})
	if summary.Processed != 0 {
		t.Fatalf("empty run processed %d", summary.Processed)
	}
}
