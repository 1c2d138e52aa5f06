package sqlkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAndTrimSpace(t *testing.T) {
	assert.Equal(t, []string{"a", "", "b"}, SplitAndTrimSpace(" a ;; b", ";"))
	assert.Equal(t, []string{"a", "b"}, SplitAndTrimSpace(" a ;; b", ";", true))
	assert.Equal(t, []string{""}, SplitAndTrimSpace(" ", ","))
	assert.Empty(t, SplitAndTrimSpace(" ", ",", true))
}
