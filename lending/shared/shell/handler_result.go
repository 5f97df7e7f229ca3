package shell

import "time"

// HandlerResult carries the outcome of a command handler execution back to
// the caller, including how much retrying was needed to get there.
type HandlerResult struct {
	Idempotent       bool
	RetryAttempts    int
	TotalRetryDelay  time.Duration
	LastErrorType    string
	RetriesExhausted bool
}

// NewSuccessResult creates a HandlerResult for a command that changed state.
func NewSuccessResult(metrics RetryMetrics) HandlerResult {
	return HandlerResult{
		Idempotent:       false,
		RetryAttempts:    metrics.Attempts,
		TotalRetryDelay:  metrics.TotalDelay,
		LastErrorType:    metrics.LastErrorType,
		RetriesExhausted: metrics.RetriesExhausted,
	}
}

// NewIdempotentResult creates a HandlerResult for a command that was a no-op.
func NewIdempotentResult(metrics RetryMetrics) HandlerResult {
	return HandlerResult{
		Idempotent:       true,
		RetryAttempts:    metrics.Attempts,
		TotalRetryDelay:  metrics.TotalDelay,
		LastErrorType:    metrics.LastErrorType,
		RetriesExhausted: metrics.RetriesExhausted,
	}
}

// NewErrorResult creates a HandlerResult for a failed command execution.
func NewErrorResult(metrics RetryMetrics) HandlerResult {
	return HandlerResult{
		Idempotent:       false,
		RetryAttempts:    metrics.Attempts,
		TotalRetryDelay:  metrics.TotalDelay,
		LastErrorType:    metrics.LastErrorType,
		RetriesExhausted: metrics.RetriesExhausted,
	}
}
