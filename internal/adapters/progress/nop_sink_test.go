package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSink(t *testing.T) {
	assert.IsType(t, &NopSink{}, NewSink(true, false))
	assert.IsType(t, &NopSink{}, NewSink(false, true))
	assert.IsType(t, &SpinnerProgressReporter{}, NewSink(false, false))
}
