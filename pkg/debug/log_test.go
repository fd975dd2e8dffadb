package debug

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogWritesOnlyWhenEnabled(t *testing.T) {
	Disable()
	Log("tones", "dropped %d", 1)

	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()

	if !Enabled() {
		t.Fatal("expected logging to be enabled")
	}

	Log("tones", "freq=%d delay=%d", 440, 200)

	got := buf.String()
	if strings.Contains(got, "dropped") {
		t.Errorf("message logged while disabled: %q", got)
	}
	if !strings.Contains(got, "tones") || !strings.Contains(got, "freq=440 delay=200") {
		t.Errorf("missing trace line in %q", got)
	}
}

func TestDisableStopsOutput(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	Disable()

	n := buf.Len()
	Log("tones", "after")
	if buf.Len() != n {
		t.Errorf("wrote %q after Disable", buf.String()[n:])
	}
	if Enabled() {
		t.Error("still enabled")
	}
}
