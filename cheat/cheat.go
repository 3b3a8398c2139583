// Package cheat is the developer cheat system: named commands with handlers,
// dispatched by the first token of an input line. It is only constructed
// when the engine is built with the cheat_system feature.
package cheat

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode"

	art "github.com/plar/go-adaptive-radix-tree"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/exp/slices"

	"github.com/suborbital/necrosis/telemetry"
	"github.com/suborbital/vektor/vlog"
)

var (
	// ErrUnknownCommand is returned by Process for unregistered commands.
	ErrUnknownCommand = errors.New("unknown cheat command")
	// ErrEmptyCommand is returned when registering a command with no usable name.
	ErrEmptyCommand = errors.New("cheat command name is empty or contains whitespace")
	// ErrNilHandler is returned when registering a command without a handler.
	ErrNilHandler = errors.New("cheat command handler is nil")
)

// Handler runs one cheat command. args is the rest of the input line.
type Handler func(out io.Writer, args string) error

// System holds the registered cheat commands.
type System struct {
	lock     sync.RWMutex
	commands art.Tree
	logger   *vlog.Logger
	metrics  telemetry.Metrics
}

// New returns an empty System.
func New(logger *vlog.Logger) *System {
	return &System{
		commands: art.New(),
		logger:   logger,
		metrics:  telemetry.NoopMetrics(),
	}
}

// UseMetrics makes Process count dispatched commands in m.
func (s *System) UseMetrics(m telemetry.Metrics) {
	s.lock.Lock()
	s.metrics = m
	s.lock.Unlock()
}

// Register adds a command, replacing any earlier handler with the same name.
func (s *System) Register(name string, handler Handler) error {
	if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return errors.Wrapf(ErrEmptyCommand, "register %q", name)
	}

	if handler == nil {
		return errors.Wrapf(ErrNilHandler, "register %q", name)
	}

	s.lock.Lock()
	s.commands.Insert(art.Key(name), handler)
	s.lock.Unlock()

	s.logger.Debug(fmt.Sprintf("registered cheat command: %s", name))

	return nil
}

// Process parses one input line and runs the matching command. Blank input
// does nothing. The first token is the command; the rest of the line, with
// a single leading space removed, is passed to the handler.
func (s *System) Process(out io.Writer, input string) error {
	command, args := Parse(input)
	if command == "" {
		return nil
	}

	s.lock.RLock()
	value, found := s.commands.Search(art.Key(command))
	counter := s.metrics.CheatCommands
	s.lock.RUnlock()

	if !found {
		counter.Add(context.Background(), 1, attribute.String("result", "unknown"))
		s.logger.Warn(fmt.Sprintf("unknown cheat command: %s", command))

		return errors.Wrap(ErrUnknownCommand, command)
	}

	s.logger.Info(fmt.Sprintf("executing: %s with args: '%s'", command, args))

	if err := value.(Handler)(out, args); err != nil {
		counter.Add(context.Background(), 1, attribute.String("command", command), attribute.String("result", "failed"))
		return errors.Wrapf(err, "cheat command %s", command)
	}

	counter.Add(context.Background(), 1, attribute.String("command", command), attribute.String("result", "ok"))

	return nil
}

// Parse splits an input line into command and arguments.
func Parse(input string) (command, args string) {
	trimmed := strings.TrimLeftFunc(input, unicode.IsSpace)
	if trimmed == "" {
		return "", ""
	}

	end := strings.IndexFunc(trimmed, unicode.IsSpace)
	if end < 0 {
		return trimmed, ""
	}

	return trimmed[:end], strings.TrimPrefix(trimmed[end:], " ")
}

// Complete returns the sorted names of commands starting with prefix.
func (s *System) Complete(prefix string) []string {
	if prefix == "" {
		return s.Commands()
	}

	names := []string{}

	s.lock.RLock()
	s.commands.ForEachPrefix(art.Key(prefix), func(node art.Node) bool {
		if node.Kind() == art.Leaf && strings.HasPrefix(string(node.Key()), prefix) {
			names = append(names, string(node.Key()))
		}

		return true
	})
	s.lock.RUnlock()

	slices.Sort(names)

	return names
}

// Commands returns every registered command name, sorted.
func (s *System) Commands() []string {
	names := []string{}

	s.lock.RLock()
	s.commands.ForEach(func(node art.Node) bool {
		names = append(names, string(node.Key()))
		return true
	}, art.TraverseLeaf)
	s.lock.RUnlock()

	slices.Sort(names)

	return names
}
