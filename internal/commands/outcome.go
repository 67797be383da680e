package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-seogen/internal/logging"
	"github.com/goliatone/go-seogen/pkg/interfaces"
)

// OutcomeStatus classifies how a command run ended.
type OutcomeStatus string

const (
	StatusOK       OutcomeStatus = "ok"
	StatusFailed   OutcomeStatus = "failed"
	StatusCanceled OutcomeStatus = "canceled"
)

// Outcome is handed to observers once a command returns.
type Outcome struct {
	Command   string
	Operation string
	Fields    map[string]any
	Elapsed   time.Duration
	Status    OutcomeStatus
	Err       error
}

// Observer receives the outcome of every run of a handler.
type Observer[T command.Message] func(ctx context.Context, msg T, outcome Outcome)

// LogOutcomes returns an observer that writes each outcome to logger.
func LogOutcomes[T command.Message](logger interfaces.Logger) Observer[T] {
	logger = EnsureLogger(logger)
	return func(_ context.Context, _ T, outcome Outcome) {
		outcome.log(logging.WithFields(logger, outcome.Fields))
	}
}

func (o Outcome) log(logger interfaces.Logger) {
	elapsed := o.Elapsed.Milliseconds()
	switch o.Status {
	case StatusOK:
		logger.Info("command.done", "elapsed_ms", elapsed)
	case StatusCanceled:
		logger.Warn("command.canceled", "elapsed_ms", elapsed, "error", o.Err)
	default:
		logger.Error("command.failed", "elapsed_ms", elapsed, "error", o.Err)
	}
}
