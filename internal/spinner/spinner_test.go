package spinner

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWhile_SlowCall(t *testing.T) {
	var buf bytes.Buffer

	While(&buf, "probing dataset", func() {
		time.Sleep(250 * time.Millisecond)
	})

	output := buf.String()
	assert.Contains(t, output, "probing dataset")
	// The line is cleared when the call returns.
	assert.True(t, strings.HasSuffix(output, "\r"))
}

func TestWhile_InstantCall(t *testing.T) {
	var buf bytes.Buffer

	While(&buf, "probing dataset", func() {})

	assert.Empty(t, buf.String())
}
