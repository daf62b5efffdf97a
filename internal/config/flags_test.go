package config

import (
	"testing"
)

type scriptOptions struct {
	Options
	Dir    string `long:"dir" default:"public"`
	DryRun bool   `long:"dry-run"`
}

func TestParseArgs(t *testing.T) {
	var opts scriptOptions
	ok, err := ParseArgs(&opts, []string{"--config", "cfg.yaml", "--dry-run"})
	if err != nil || !ok {
		t.Fatalf("ParseArgs: ok=%v err=%v", ok, err)
	}
	if opts.Config != "cfg.yaml" || !opts.DryRun || opts.Dir != "public" || opts.EnvFile != ".env" {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestParseArgs_Unknown(t *testing.T) {
	var opts scriptOptions
	if ok, err := ParseArgs(&opts, []string{"--nope"}); ok || err == nil {
		t.Fatalf("expected error for unknown flag, got ok=%v err=%v", ok, err)
	}
}
