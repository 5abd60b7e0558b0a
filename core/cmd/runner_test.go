package cmd

import (
	"context"
	"errors"
	"testing"

	coreconfig "github.com/m3rciful/artbot/core/config"
	coretelegram "github.com/m3rciful/artbot/core/telegram"
)

type carrier struct{ cfg *coreconfig.Config }

func (c carrier) CoreConfig() *coreconfig.Config { return c.cfg }

type fakeApp struct{}

func (fakeApp) TelegramRunOptions() (coretelegram.RunOptions, error) {
	return coretelegram.RunOptions{}, nil
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("ARTBOT_CONFIG", "/etc/env.yaml")
	tests := []struct {
		opts Options
		want string
	}{
		{Options{ConfigPath: "flag.yaml", ConfigEnvVar: "ARTBOT_CONFIG"}, "flag.yaml"},
		{Options{ConfigEnvVar: "ARTBOT_CONFIG", DefaultConfigPath: "d.yaml"}, "/etc/env.yaml"},
		{Options{ConfigEnvVar: "UNSET_ARTBOT_VAR", DefaultConfigPath: "d.yaml"}, "d.yaml"},
		{Options{ConfigEnvVar: "UNSET_ARTBOT_VAR"}, ""},
	}
	for _, tt := range tests {
		if got := ResolveConfigPath(tt.opts); got != tt.want {
			t.Errorf("ResolveConfigPath(%+v) = %q, want %q", tt.opts, got, tt.want)
		}
	}
}

func TestRunStopsOnConfigError(t *testing.T) {
	bootstrapped := false
	err := Run(Options{
		LoadConfig: func(string) (ConfigCarrier, error) { return nil, coreconfig.ErrMissingToken },
		Bootstrap: func(ConfigCarrier) (TelegramApp, error) {
			bootstrapped = true
			return fakeApp{}, nil
		},
	})
	if !errors.Is(err, coreconfig.ErrMissingToken) {
		t.Fatalf("err = %v, want ErrMissingToken", err)
	}
	if bootstrapped {
		t.Fatal("bootstrap must not run without a valid config")
	}
}

func TestRunWrapsHooks(t *testing.T) {
	var (
		started, stopped, loggerClosed bool
		gotCfg                         *coreconfig.Config
	)
	cfg := &coreconfig.Config{}
	err := Run(Options{
		LoadConfig: func(string) (ConfigCarrier, error) { return carrier{cfg: cfg}, nil },
		Bootstrap:  func(ConfigCarrier) (TelegramApp, error) { return fakeApp{}, nil },
		ShutdownLogger: func() error {
			loggerClosed = true
			return nil
		},
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			gotCfg = opts.Config
			if err := opts.OnStart(ctx, coretelegram.Runtime{}); err != nil {
				return err
			}
			started = true
			stopped = opts.OnStop(ctx, coretelegram.Runtime{}) == nil
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !started || !stopped || !loggerClosed {
		t.Fatalf("started=%v stopped=%v loggerClosed=%v", started, stopped, loggerClosed)
	}
	if gotCfg != nil {
		t.Fatal("run options come from the app, not the loader")
	}
}
