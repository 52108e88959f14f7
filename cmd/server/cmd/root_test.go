package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	expected := []string{"serve", "migrate", "account", "version"}

	for _, name := range expected {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	output := out.String()
	if !strings.Contains(output, "Eventbook Server") {
		t.Errorf("version output missing header: %q", output)
	}
	if !strings.Contains(output, "Version:") {
		t.Errorf("version output missing version line: %q", output)
	}
}
