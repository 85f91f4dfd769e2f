package config

import (
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
	"github.com/mit-dci/lyra2/coinparam"
	"github.com/mit-dci/lyra2/hashchain"
)

type Config struct { // define a struct for usage with go-flags
	Recipe string `long:"recipe" description:"Hash chain to run: lyra2re, lyra2rev2, lyra2rev3 or scryptn."`
	Net    string `long:"net" description:"Network whose proof of work rules --check applies: vtc, vtctest or vtcreg."`
	Height int32  `long:"height" description:"Block height used to pick the proof of work chain."`

	Check       bool `long:"check" description:"Treat inputs as 80 byte headers and verify their proof of work."`
	Bench       int  `long:"bench" description:"Hash this many pseudo-headers and report the hash rate."`
	Workers     int  `long:"workers" description:"Number of concurrent hashing workers, 0 for one per CPU."`
	Interactive bool `short:"i" long:"interactive" description:"Open an interactive shell."`

	HomeDir    string `long:"dir" description:"Specify Home Directory of lyra2sum as an absolute path."`
	LogDir     string `long:"logdir" description:"Directory for the rotated log file. Defaults to <dir>/logs."`
	ConfigFile string

	Verbose bool `short:"v" long:"verbose" description:"Log at info level."`
	Debug   bool `long:"debug" description:"Log at debug level, tracing every hash step."`

	Params *coinparam.Params
	Chain  *hashchain.Recipe
}

var (
	DefaultHomeDirName    = ".lyra2sum"
	DefaultConfigFilename = "lyra2sum.conf"
	DefaultLogFilename    = "lyra2sum.log"
	DefaultHistoryFile    = "lyra2sum.history"
	DefaultHomeDir        = filepath.Join(os.Getenv("HOME"), DefaultHomeDirName)
	DefaultRecipe         = "lyra2rev3"
	DefaultNet            = "vtc"
	DefaultWorkers        = 0
)

// NewConfigParser returns a new command line flags parser.
func NewConfigParser(conf *Config, options flags.Options) *flags.Parser {
	parser := flags.NewParser(conf, options)
	return parser
}

// DefaultConfig returns a Config holding the package defaults.
func DefaultConfig() *Config {
	return &Config{
		Recipe:  DefaultRecipe,
		Net:     DefaultNet,
		Workers: DefaultWorkers,
		HomeDir: DefaultHomeDir,
	}
}
