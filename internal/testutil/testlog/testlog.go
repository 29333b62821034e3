package testlog

import (
	"testing"

	"chopstick/internal/logging"
)

// Start configures the test logging profile; CHOPSTICK_LOG_LEVEL still
// overrides when debugging a single test.
func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
}
