package main

import (
	"testing"
)

func TestMediaStatusEmptyLedger(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"media", "status"}, env.configPath)
	if err != nil {
		t.Fatalf("media status: %v", err)
	}
	requireContains(t, out, "No derived media recorded yet")
}
