package progress

import (
	"context"

	"github.com/trebuchet-org/coffer/internal/usecase"
)

// NopSink is a no-op implementation of ProgressSink
type NopSink struct{}

// NewNopSink creates a new no-op progress sink
func NewNopSink() *NopSink {
	return &NopSink{}
}

// OnProgress does nothing with progress events
func (n *NopSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {}

// Info does nothing with info messages
func (n *NopSink) Info(message string) {}

// Error does nothing with error messages
func (n *NopSink) Error(message string) {}

// NewSink picks the spinner for interactive terminals and the nop sink for
// scripted or JSON output.
func NewSink(nonInteractive, jsonOut bool) usecase.ProgressSink {
	if nonInteractive || jsonOut {
		return NewNopSink()
	}
	return NewSpinnerProgressReporter()
}

var _ usecase.ProgressSink = (*NopSink)(nil)
