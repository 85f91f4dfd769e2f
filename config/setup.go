package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
	"github.com/mit-dci/lyra2/coinparam"
	"github.com/mit-dci/lyra2/hashchain"
	"github.com/mit-dci/lyra2/logging"
)

// ErrBadOption describes a flag value outside its allowed range.
var ErrBadOption = errors.New("invalid option")

// createDefaultConfigFile creates a config file  -- only call this if the
// config file isn't already there
func createDefaultConfigFile(destinationPath string) error {
	dest, err := os.OpenFile(filepath.Join(destinationPath, DefaultConfigFilename),
		os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer dest.Close()

	writer := bufio.NewWriter(dest)
	defaultArgs := fmt.Sprintf("recipe=%s\nnet=%s\n", DefaultRecipe, DefaultNet)
	_, err = writer.WriteString(defaultArgs)
	if err != nil {
		return err
	}
	return writer.Flush()
}

// Load builds the configuration from defaults, the config file in the home
// directory and finally args, which take precedence.  It creates the home
// directory and a default config file on first use, and returns the
// positional arguments left over.  A help request comes back as a
// *flags.Error of type flags.ErrHelp carrying the usage text.
func Load(args []string) (*Config, []string, error) {
	conf := DefaultConfig()

	// Pre-parse the command line options to see if an alternative home
	// directory was given.  Any errors aside from the help message can be
	// ignored here since they will be caught by the final parse below.
	preconf := *conf
	preParser := NewConfigParser(&preconf, flags.HelpFlag)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return nil, nil, err
		}
	}

	// create home directory
	if _, err := os.Stat(preconf.HomeDir); os.IsNotExist(err) {
		logging.Infof("Creating home directory %s", preconf.HomeDir)
		if err := os.MkdirAll(preconf.HomeDir, 0700); err != nil {
			return nil, nil, err
		}
	}
	conf.ConfigFile = filepath.Join(preconf.HomeDir, DefaultConfigFilename)
	if _, err := os.Stat(conf.ConfigFile); os.IsNotExist(err) {
		logging.Infof("Creating a new config file")
		if err := createDefaultConfigFile(preconf.HomeDir); err != nil {
			return nil, nil, fmt.Errorf("creating default config file in %s: %w",
				preconf.HomeDir, err)
		}
	}

	parser := NewConfigParser(conf, flags.Default&^flags.PrintErrors)
	// lets parse the config file provided, if any
	err = flags.NewIniParser(parser).ParseFile(conf.ConfigFile)
	if err != nil {
		var perr *os.PathError
		if !errors.As(err, &perr) {
			return nil, nil, err
		}
	}
	// Parse command line options again to ensure they take precedence.
	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}

	if err := conf.validate(); err != nil {
		return nil, nil, err
	}
	return conf, rest, nil
}

// validate resolves the recipe and network names and checks numeric ranges.
func (conf *Config) validate() error {
	var err error
	conf.Chain, err = hashchain.Lookup(conf.Recipe)
	if err != nil {
		return err
	}
	conf.Params, err = coinparam.ByName(conf.Net)
	if err != nil {
		return fmt.Errorf("%w %q, want one of %v", err, conf.Net,
			coinparam.NetNames())
	}
	if conf.Bench < 0 {
		return fmt.Errorf("%w: --bench %d is negative", ErrBadOption, conf.Bench)
	}
	if conf.Workers < 0 {
		return fmt.Errorf("%w: --workers %d is negative", ErrBadOption,
			conf.Workers)
	}
	if conf.Height < 0 {
		return fmt.Errorf("%w: --height %d is negative", ErrBadOption,
			conf.Height)
	}
	if conf.LogDir == "" {
		conf.LogDir = filepath.Join(conf.HomeDir, "logs")
	}
	return nil
}

// LogLevel maps the verbosity flags to a logging level.
func (conf *Config) LogLevel() int {
	switch {
	case conf.Debug:
		return int(logging.LogLevelDebug)
	case conf.Verbose:
		return int(logging.LogLevelInfo)
	default:
		return int(logging.LogLevelWarning)
	}
}
