package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromUnixMillis(t *testing.T) {
	got := FromUnixMillis(1700000000000)
	assert.Equal(t, int64(1700000000), got.Unix())
	assert.Equal(t, time.UTC, got.Location())
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"bitcoin", "ethereum"}, SplitCSV(" bitcoin, ,ethereum "))
	assert.Nil(t, SplitCSV(""))
}
