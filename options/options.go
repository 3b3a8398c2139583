package options

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sethvargo/go-envconfig"

	"github.com/suborbital/necrosis/release"
	"github.com/suborbital/vektor/vlog"
)

const (
	necrosisEnvPrefix = "NECROSIS"
)

// Options defines options for the engine.
type Options struct {
	logger *vlog.Logger
	input  io.Reader
	output io.Writer

	AppName      string       `env:"NECROSIS_APP_NAME,default=Necrosis"`
	SessionID    sessionID    `env:"NECROSIS_SESSION_ID"`
	ConsoleAddr  string       `env:"NECROSIS_CONSOLE_ADDR"`
	TracerConfig TracerConfig `env:",prefix=NECROSIS_TRACER_"`
}

// TracerConfig holds values specific to setting up the tracer. All configuration options have a prefix of
// NECROSIS_TRACER_ specified in the parent Options struct. It is only read when performance metrics are compiled in.
type TracerConfig struct {
	TracerType      string           `env:"TYPE,default=none"`
	ServiceName     string           `env:"SERVICENAME,default=necrosis"`
	Probability     float64          `env:"PROBABILITY,default=0.5"`
	Collector       *CollectorConfig `env:",prefix=COLLECTOR_,noinit"`
	HoneycombConfig *HoneycombConfig `env:",prefix=HONEYCOMB_,noinit"`
}

// CollectorConfig holds config values specific to the collector tracer exporter running locally / within your cluster.
// All the configuration values here have a prefix of NECROSIS_TRACER_COLLECTOR_.
type CollectorConfig struct {
	Endpoint string `env:"ENDPOINT"`
}

// HoneycombConfig holds config values specific to the honeycomb tracer exporter. All the configuration values here have
// a prefix of NECROSIS_TRACER_HONEYCOMB_.
type HoneycombConfig struct {
	Endpoint string `env:"ENDPOINT"`
	APIKey   string `env:"APIKEY"`
	Dataset  string `env:"DATASET"`
}

type appMeta struct {
	NecrosisVersion string `json:"necrosis_version"`
}

// Modifier defines options for the engine.
type Modifier func(*Options)

// Resolve will use the passed in envconfig.Lookuper to figure out the options of the engine. If nil is passed in, it
// will use the OsLookuper implementation.
func Resolve(lookuper envconfig.Lookuper) (Options, error) {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}

	var opts Options

	if err := envconfig.ProcessWith(context.Background(), &opts, lookuper); err != nil {
		return Options{}, errors.Wrap(err, "necrosis options parsing")
	}

	if opts.SessionID == "" {
		if err := opts.SessionID.EnvDecode(""); err != nil {
			return Options{}, errors.Wrap(err, "failed to generate session ID")
		}
	}

	return opts, nil
}

// New resolves options from the environment and then applies mods on top.
func New(lookuper envconfig.Lookuper, mods ...Modifier) (*Options, error) {
	resolved, err := Resolve(lookuper)
	if err != nil {
		return nil, errors.Wrap(err, "failed to Resolve")
	}

	opts := &resolved

	for _, mod := range mods {
		mod(opts)
	}

	opts.finalize(necrosisEnvPrefix)

	return opts, nil
}

// UseLogger sets the logger to be used.
func UseLogger(logger *vlog.Logger) Modifier {
	return func(opts *Options) {
		opts.logger = logger
	}
}

// UseInput sets the reader the console reads command lines from.
func UseInput(r io.Reader) Modifier {
	return func(opts *Options) {
		opts.input = r
	}
}

// UseOutput sets where engine output (status, overlay, command output) is written.
func UseOutput(w io.Writer) Modifier {
	return func(opts *Options) {
		opts.output = w
	}
}

// AppName sets the app name to be used.
func AppName(name string) Modifier {
	return func(opts *Options) {
		if name != "" {
			opts.AppName = name
		}
	}
}

// ConsoleAddr sets the listen address of the websocket console.
func ConsoleAddr(addr string) Modifier {
	return func(opts *Options) {
		if addr != "" {
			opts.ConsoleAddr = addr
		}
	}
}

// Logger returns the options' logger.
func (o *Options) Logger() *vlog.Logger {
	return o.logger
}

// Input returns the console input, nil if the console has nothing to read.
func (o *Options) Input() io.Reader {
	return o.input
}

// Output returns the engine output writer.
func (o *Options) Output() io.Writer {
	return o.output
}

// Session returns the session ID as a string.
func (o *Options) Session() string {
	return string(o.SessionID)
}

// finalize fills in whatever the modifiers left unset.
func (o *Options) finalize(prefix string) {
	if o.logger == nil {
		o.logger = vlog.Default(
			vlog.EnvPrefix(prefix),
			vlog.AppMeta(appMeta{NecrosisVersion: release.DotVersion}),
			vlog.Level(vlog.LogLevelInfo),
		)
	}

	if o.output == nil {
		o.output = os.Stdout
	}
}
