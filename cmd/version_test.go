package cmd

import (
	"bytes"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)

	if got, want := out.String(), "talentscout version: unknown\n"; got != want {
		t.Fatalf("unexpected output: got %q, want %q", got, want)
	}
}
