package main

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/m3rciful/artbot/core/buildinfo"
	coreconfig "github.com/m3rciful/artbot/core/config"
)

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != buildinfo.String() {
		t.Fatalf("version output = %q, want %q", got, buildinfo.String())
	}
}

func TestRootFailsWithoutToken(t *testing.T) {
	for _, k := range []string{"TELEGRAM_TOKEN", "BOT_TOKEN", "CONFIG_PATH"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	root := newRootCmd()
	var stderr bytes.Buffer
	root.SetErr(&stderr)
	root.SetArgs([]string{"--config", t.TempDir() + "/absent.yaml"})

	err := root.Execute()
	if !errors.Is(err, coreconfig.ErrMissingToken) {
		t.Fatalf("err = %v, want ErrMissingToken", err)
	}
	if !strings.Contains(stderr.String(), "telegram token is required") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}
