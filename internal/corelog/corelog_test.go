package corelog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewSetsLevelFromVerbose(t *testing.T) {
	New(true)
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("expected verbose=true to set the global level to debug, got %s", zerolog.GlobalLevel())
	}

	New(false)
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("expected verbose=false to set the global level to info, got %s", zerolog.GlobalLevel())
	}
}

func TestRunFieldAppearsInLogOutput(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).With().Str("run", "test-run-id").Logger()
	log.Info().Msg("hello")
	if !strings.Contains(buf.String(), "test-run-id") {
		t.Errorf("expected the run correlation ID to appear in log output, got %q", buf.String())
	}
}
