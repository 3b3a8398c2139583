package cheat

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ErrMissingArgs is returned by commands that need an argument and got none.
var ErrMissingArgs = errors.New("missing arguments")

// RegisterDefaults installs the built-in commands: god_mode, spawn_item and help.
func RegisterDefaults(s *System) error {
	defaults := map[string]Handler{
		"god_mode": func(out io.Writer, args string) error {
			_, err := fmt.Fprintf(out, "[CHEAT] God mode activated! Args: %s\n", args)
			return err
		},
		"spawn_item": func(out io.Writer, args string) error {
			item := strings.TrimSpace(args)
			if item == "" {
				return errors.Wrap(ErrMissingArgs, "usage: spawn_item <item>")
			}

			_, err := fmt.Fprintf(out, "[CHEAT] Spawning item: %s\n", item)
			return err
		},
		"help": func(out io.Writer, args string) error {
			names := s.Complete(strings.TrimSpace(args))
			_, err := fmt.Fprintf(out, "commands: %s\n", strings.Join(names, ", "))
			return err
		},
	}

	for name, handler := range defaults {
		if err := s.Register(name, handler); err != nil {
			return errors.Wrapf(err, "failed to Register %s", name)
		}
	}

	return nil
}
