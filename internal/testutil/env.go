package testutil

import (
	"os"
	"testing"
)

// WithEnv sets key to val (unsetting it when val is empty) and returns a
// func restoring the previous value. The restore also runs at test cleanup.
func WithEnv(t *testing.T, key, val string) func() {
	t.Helper()
	old, had := os.LookupEnv(key)
	if val == "" {
		_ = os.Unsetenv(key)
	} else {
		_ = os.Setenv(key, val)
	}
	restored := false
	restore := func() {
		if restored {
			return
		}
		restored = true
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	}
	t.Cleanup(restore)
	return restore
}
