package command

import (
	"io"

	"github.com/pkg/errors"

	"github.com/suborbital/necrosis/engine"
	"github.com/suborbital/necrosis/options"
	"github.com/suborbital/vektor/vlog"
)

// oneShotEngine builds an engine for commands that do one thing and exit.
// Only warnings and errors are logged so that out stays readable.
func oneShotEngine(out io.Writer) (*engine.Engine, error) {
	logger := vlog.Default(
		vlog.Level(vlog.LogLevelWarn),
		vlog.EnvPrefix("NECROSIS"),
	)

	opts, err := options.New(nil, options.UseLogger(logger), options.UseOutput(out))
	if err != nil {
		return nil, errors.Wrap(err, "failed to options.New")
	}

	e, err := engine.New(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to engine.New")
	}

	return e, nil
}
