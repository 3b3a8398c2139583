// Package featuregen generates the features package from a manifest: one
// constant per feature, declared in a tagged and an untagged file, plus
// the flag table.
package featuregen

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	defaultPackage = "features"
	defaultPrefix  = "necrosis"
)

// ErrInvalidManifest and others are manifest related errors.
var (
	ErrInvalidManifest     = errors.New("invalid feature manifest")
	ErrUnsupportedManifest = errors.New("unsupported manifest extension, use .yaml, .yml or .toml")
)

var nameRegex = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)

// reservedIdentifiers are declared by the hand-written part of the features
// package, so no generated constant may use them.
var reservedIdentifiers = map[string]bool{
	"All":            true,
	"ErrUnknownFlag": true,
	"Flag":           true,
	"Lookup":         true,
	"Parse":          true,
	"Snapshot":       true,
	"State":          true,
}

// Manifest lists the features to generate.
type Manifest struct {
	Package  string    `yaml:"package" toml:"package"`
	Prefix   string    `yaml:"prefix" toml:"prefix"`
	Features []Feature `yaml:"features" toml:"features"`
}

// Feature is one manifest entry.
type Feature struct {
	Name        string `yaml:"name" toml:"name"`
	Description string `yaml:"description" toml:"description"`
}

// Load reads a manifest, choosing the decoder by file extension.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to ReadFile")
	}

	m := &Manifest{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, errors.Wrap(err, "failed to yaml.Unmarshal manifest")
		}
	case ".toml":
		if err := toml.Unmarshal(data, m); err != nil {
			return nil, errors.Wrap(err, "failed to toml.Unmarshal manifest")
		}
	default:
		return nil, errors.Wrap(ErrUnsupportedManifest, path)
	}

	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "failed to Validate")
	}

	return m, nil
}

// Validate checks the manifest and fills in the default package and prefix.
func (m *Manifest) Validate() error {
	if m.Package == "" {
		m.Package = defaultPackage
	}

	if m.Prefix == "" {
		m.Prefix = defaultPrefix
	}

	if !nameRegex.MatchString(m.Package) || strings.Contains(m.Package, "_") {
		return errors.Wrapf(ErrInvalidManifest, "package name %q", m.Package)
	}

	if !nameRegex.MatchString(m.Prefix) {
		return errors.Wrapf(ErrInvalidManifest, "prefix %q is not lower_snake", m.Prefix)
	}

	if len(m.Features) == 0 {
		return errors.Wrap(ErrInvalidManifest, "no features")
	}

	// flags are stored in a uint8
	if len(m.Features) > 256 {
		return errors.Wrapf(ErrInvalidManifest, "%d features, at most 256 are supported", len(m.Features))
	}

	seen := map[string]bool{}
	declared := map[string]string{}

	for i, f := range m.Features {
		if !nameRegex.MatchString(f.Name) {
			return errors.Wrapf(ErrInvalidManifest, "feature %d: name %q is not lower_snake", i, f.Name)
		}

		if seen[f.Name] {
			return errors.Wrapf(ErrInvalidManifest, "feature %d: duplicate name %q", i, f.Name)
		}

		seen[f.Name] = true

		// each feature declares the flag and its Enabled constant
		for _, ident := range []string{ConstName(f.Name), ConstName(f.Name) + "Enabled"} {
			if reservedIdentifiers[ident] {
				return errors.Wrapf(ErrInvalidManifest, "feature %s: identifier %s is reserved by the features package", f.Name, ident)
			}

			if other, ok := declared[ident]; ok {
				return errors.Wrapf(ErrInvalidManifest, "feature %s: identifier %s is also generated for %s", f.Name, ident, other)
			}

			declared[ident] = f.Name
		}

		description := strings.TrimSpace(f.Description)
		if description == "" {
			return errors.Wrapf(ErrInvalidManifest, "feature %s: description is required", f.Name)
		}

		if strings.ContainsAny(description, "\r\n") {
			return errors.Wrapf(ErrInvalidManifest, "feature %s: description must be a single line", f.Name)
		}
	}

	return nil
}

// Tag returns the build tag that enables f.
func (m *Manifest) Tag(f Feature) string {
	return m.Prefix + "_" + f.Name
}

// ConstName returns the Go name of a feature, e.g. CheatSystem for cheat_system.
func ConstName(name string) string {
	b := &strings.Builder{}

	for _, word := range strings.Split(name, "_") {
		if word == "" {
			continue
		}

		b.WriteString(strings.ToUpper(word[:1]))
		b.WriteString(word[1:])
	}

	return b.String()
}
