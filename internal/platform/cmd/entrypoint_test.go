package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"

	"github.com/myhome/console/internal/platform/otel"
)

type testConfig struct {
	Address string `env:"CMD_TEST_ADDRESS" envDefault:"127.0.0.1:8080"`
	Mode    string `env:"CMD_TEST_MODE" envDefault:"server"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CMD_TEST_ADDRESS", "env:9000")
	t.Setenv("CMD_TEST_MODE", "env-mode")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfgRef := testConfig{}
	if err := ParseConfig(&cfgRef); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfgRef.Address, "address", cfgRef.Address, "address")
	fs.StringVar(&cfgRef.Mode, "mode", cfgRef.Mode, "mode")

	if err := ParseArgs(fs, []string{"-address", "flag:9001"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfgRef.Address != "flag:9001" {
		t.Fatalf("expected flag value for address, got %q", cfgRef.Address)
	}
	if cfgRef.Mode != "env-mode" {
		t.Fatalf("expected env default mode, got %q", cfgRef.Mode)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	var cfg *testConfig
	if err := ParseConfig(cfg); err == nil {
		t.Fatal("expected nil config target to be rejected")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceConsole, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("CONSOLE_OTEL_ENDPOINT", "")
	want := errors.New("boom")
	called := false
	err := RunWithTelemetry(context.Background(), ServiceConsole, func(context.Context) error {
		called = true
		return want
	})
	if !called {
		t.Fatal("expected run function to be called")
	}
	if !errors.Is(err, want) {
		t.Fatalf("RunWithTelemetry() = %v, want %v", err, want)
	}
}

func TestRunWithTelemetryRejectsBadTelemetryConfig(t *testing.T) {
	bad := otel.Config{Endpoint: "http://192.0.2.1:4318", SampleRatio: 2}
	called := false
	err := RunWithTelemetryAndOptions(context.Background(), ServiceConsole, RunOptions{Telemetry: &bad}, func(context.Context) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("expected sample ratio error")
	}
	if called {
		t.Fatal("run function must not be called when telemetry fails")
	}
}

func TestRunWithTelemetryReportsEnvParseFailure(t *testing.T) {
	t.Setenv("CONSOLE_OTEL_SAMPLE_RATIO", "lots")
	err := RunWithTelemetry(context.Background(), ServiceConsole, func(context.Context) error { return nil })
	if err == nil {
		t.Fatal("expected telemetry config error")
	}
}
