package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisplayRunResultsNilReport(t *testing.T) {
	// an interrupted run can end with no report at all
	assert.NotPanics(t, func() {
		displayRunResults(nil, time.Second)
	})
}
