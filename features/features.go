package features

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownFlag is returned when a name does not match any flag.
var ErrUnknownFlag = errors.New("unknown feature flag")

// Flag identifies one compile-time feature. The set of flags is closed;
// the constants live in flags_gen.go.
type Flag uint8

type definition struct {
	name        string
	tag         string
	description string
}

// State is a point-in-time description of a flag, used for reporting.
type State struct {
	Name        string `json:"name"`
	Tag         string `json:"tag"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description"`
}

func (f Flag) valid() bool {
	return int(f) < len(flagTable)
}

// Name returns the short snake_case name of the flag, e.g. "cheat_system".
func (f Flag) Name() string {
	if !f.valid() {
		return ""
	}

	return flagTable[f].name
}

// Tag returns the build tag that turns the flag on.
func (f Flag) Tag() string {
	if !f.valid() {
		return ""
	}

	return flagTable[f].tag
}

// Description returns the human readable description from the manifest.
func (f Flag) Description() string {
	if !f.valid() {
		return ""
	}

	return flagTable[f].description
}

func (f Flag) String() string {
	if !f.valid() {
		return fmt.Sprintf("Flag(%d)", uint8(f))
	}

	return flagTable[f].name
}

// Title returns the name in title case for display, e.g. "Cheat System".
func (f Flag) Title() string {
	words := strings.Split(f.Name(), "_")
	for i, w := range words {
		if w == "" {
			continue
		}

		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	return strings.Join(words, " ")
}

// State returns the reporting view of f.
func (f Flag) State() State {
	return State{
		Name:        f.Name(),
		Tag:         f.Tag(),
		Enabled:     f.Enabled(),
		Description: f.Description(),
	}
}

// All returns every known flag in declaration order.
func All() []Flag {
	flags := make([]Flag, len(flagTable))
	for i := range flagTable {
		flags[i] = Flag(i)
	}

	return flags
}

// Lookup finds a flag by its short name.
func Lookup(name string) (Flag, bool) {
	for i, def := range flagTable {
		if def.name == name {
			return Flag(i), true
		}
	}

	return 0, false
}

// Parse is Lookup for user input: surrounding space is ignored, and an
// unknown name is an error wrapping ErrUnknownFlag.
func Parse(name string) (Flag, error) {
	f, ok := Lookup(strings.TrimSpace(name))
	if !ok {
		return 0, errors.Wrapf(ErrUnknownFlag, "%q", name)
	}

	return f, nil
}

// Snapshot returns the state of every flag, in declaration order.
func Snapshot() []State {
	states := make([]State, 0, len(flagTable))
	for _, f := range All() {
		states = append(states, f.State())
	}

	return states
}
