package bootstrap

import (
	"errors"
	"testing"

	coreconfig "github.com/m3rciful/artbot/core/config"
	"github.com/m3rciful/artbot/core/telegram/state"
)

func TestRunRequiresConfig(t *testing.T) {
	if _, err := Run(Options{}); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestRunLoggerFailure(t *testing.T) {
	boom := errors.New("boom")
	_, err := Run(Options{
		Config:     &coreconfig.Config{},
		LoggerInit: func(*coreconfig.Config) error { return boom },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}

func TestRunBuildsInfrastructure(t *testing.T) {
	sessions := state.NewMemoryManager()
	res, err := Run(Options{
		Config:     &coreconfig.Config{},
		LoggerInit: func(*coreconfig.Config) error { return nil },
		Sessions:   sessions,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	defer res.Dispatcher.Close()
	if res.Sessions != sessions {
		t.Fatal("explicit session store must be kept")
	}
	if res.Dispatcher == nil {
		t.Fatal("dispatcher not created")
	}
}
