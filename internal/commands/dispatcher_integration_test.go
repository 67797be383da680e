package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	"github.com/goliatone/go-seogen/internal/commands"
	staticcmd "github.com/goliatone/go-seogen/internal/commands/static"
	"github.com/goliatone/go-seogen/internal/generator"
)

var errLocked = errors.New("output directory locked")

// flakyGenerator fails its first `failures` builds, then succeeds.
type flakyGenerator struct {
	failures int
	builds   int
}

func (f *flakyGenerator) Build(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
	f.builds++
	if f.builds <= f.failures {
		return nil, errLocked
	}
	return &generator.BuildResult{
		Languages: opts.Languages,
		Succeeded: []generator.UnitResult{{Page: "index", Language: "en", Output: "index.html"}},
	}, nil
}

func (f *flakyGenerator) BuildSitemap(context.Context) error { return nil }

func (f *flakyGenerator) Clean(context.Context) error { return nil }

func TestDispatchedBuildRetriesUntilSuccess(t *testing.T) {
	svc := &flakyGenerator{failures: 1}
	handler := staticcmd.NewBuildSiteHandler(svc, nil,
		commands.WithTimeout[staticcmd.BuildSiteCommand](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	var built int
	err := dispatcher.Dispatch(context.Background(), staticcmd.BuildSiteCommand{
		Languages:      []string{"en"},
		ResultCallback: func(env staticcmd.ResultEnvelope) { built = env.Result.PagesBuilt() },
	})
	if err != nil {
		t.Fatalf("dispatch: expected success after retry, got %v", err)
	}
	if svc.builds != 2 {
		t.Fatalf("expected 2 builds (initial + retry), got %d", svc.builds)
	}
	if built != 1 {
		t.Fatalf("expected result callback after the successful attempt, got %d pages", built)
	}
}

func TestDispatchedBuildRetryExhaustionPropagatesError(t *testing.T) {
	svc := &flakyGenerator{failures: 10}
	handler := staticcmd.NewBuildSiteHandler(svc, nil,
		commands.WithTimeout[staticcmd.BuildSiteCommand](time.Second))

	sub := dispatcher.SubscribeCommand(handler, runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	err := dispatcher.Dispatch(context.Background(), staticcmd.BuildSiteCommand{})
	if err == nil {
		t.Fatal("expected dispatcher to return error after exhausting retries")
	}
	if svc.builds != 3 {
		t.Fatalf("expected 3 builds (initial + 2 retries), got %d", svc.builds)
	}
	if !errors.Is(err, errLocked) {
		t.Fatalf("expected generator error to survive dispatch, got %v", err)
	}
}
