package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeList(t *testing.T) {
	assert.Equal(t, []string{}, NormalizeList(nil))
	assert.Equal(t, []string{"OpenBelow"}, NormalizeList("OpenBelow"))
	assert.Equal(t, []string{"A", "B"}, NormalizeList([]string{"A", "B"}))

	// Editor clients decode list variables as []interface{}.
	assert.Equal(t, []string{"A", "B"}, NormalizeList([]interface{}{"A", "B"}))

	// Non-string elements are dropped rather than stringified.
	assert.Equal(t, []string{"A"}, NormalizeList([]interface{}{"A", 3}))

	// Unsupported scalar types normalize to empty.
	assert.Equal(t, []string{}, NormalizeList(42))
}
