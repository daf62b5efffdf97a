package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
)

// Options are the flags every binary accepts. Programs embed it in their
// own option struct.
type Options struct {
	Config  string `short:"c" long:"config" env:"PORTFOLIO_CONFIG" description:"Path to config YAML file"`
	EnvFile string `long:"env-file" default:".env" description:"dotenv file loaded before reading the environment"`
}

// Load reads the configuration these options point at.
func (o Options) Load() (*Config, error) {
	return LoadConfigWithEnvFile(o.Config, o.EnvFile)
}

// ParseFlags parses os.Args into opts. ok is false when help was printed.
func ParseFlags(opts any) (ok bool, err error) {
	return ParseArgs(opts, os.Args[1:])
}

func ParseArgs(opts any, args []string) (bool, error) {
	parser := flags.NewParser(opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return false, nil
		}
		return false, fmt.Errorf("failed to parse flags: %w", err)
	}
	return true, nil
}
