package featuregen

import (
	"bytes"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/suborbital/necrosis/util"
)

const header = "// Code generated by featuregen. DO NOT EDIT.\n"

var onTmpl = template.Must(template.New("on").Parse(header + `
//go:build {{.Tag}}

package {{.Package}}

// {{.Const}}Enabled is true when built with -tags {{.Tag}}.
const {{.Const}}Enabled = true
`))

var offTmpl = template.Must(template.New("off").Parse(header + `
//go:build !{{.Tag}}

package {{.Package}}

// {{.Const}}Enabled is false when built without -tags {{.Tag}}.
const {{.Const}}Enabled = false
`))

var flagsTmpl = template.Must(template.New("flags").Parse(header + `
package {{.Package}}

const (
{{- range $i, $f := .Features}}
	// {{$f.Const}} gates {{$f.Description}}
	{{$f.Const}}{{if eq $i 0}} Flag = iota{{end}}
{{- end}}
)

var flagTable = [...]definition{
{{- range .Features}}
	{{.Const}}: {name: {{printf "%q" .Name}}, tag: {{printf "%q" .Tag}}, description: {{printf "%q" .Description}}},
{{- end}}
}

// Enabled reports whether f was compiled in. For a constant f the call
// folds to the flag's constant.
func (f Flag) Enabled() bool {
	switch f {
{{- range .Features}}
	case {{.Const}}:
		return {{.Const}}Enabled
{{- end}}
	}

	return false
}
`))

type tmplFeature struct {
	Package     string
	Name        string
	Const       string
	Tag         string
	Description string
}

type tmplData struct {
	Package  string
	Features []tmplFeature
}

func makeTemplateData(m *Manifest) tmplData {
	data := tmplData{Package: m.Package}

	for _, f := range m.Features {
		data.Features = append(data.Features, tmplFeature{
			Package:     m.Package,
			Name:        f.Name,
			Const:       ConstName(f.Name),
			Tag:         m.Tag(f),
			Description: strings.TrimSpace(f.Description),
		})
	}

	return data
}

// Render returns the generated sources keyed by file name.
func Render(m *Manifest) (map[string][]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "failed to Validate")
	}

	data := makeTemplateData(m)
	files := map[string][]byte{}

	for _, f := range data.Features {
		on, err := execute(onTmpl, f)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %s", f.Name)
		}

		off, err := execute(offTmpl, f)
		if err != nil {
			return nil, errors.Wrapf(err, "feature %s", f.Name)
		}

		files[f.Name+"_on.go"] = on
		files[f.Name+"_off.go"] = off
	}

	flags, err := execute(flagsTmpl, data)
	if err != nil {
		return nil, errors.Wrap(err, "flag table")
	}

	files["flags_gen.go"] = flags

	return files, nil
}

// Generate renders m and writes the sources into dir, returning the sorted
// paths it wrote.
func Generate(m *Manifest, dir string) ([]string, error) {
	files, err := Render(m)
	if err != nil {
		return nil, errors.Wrap(err, "failed to Render")
	}

	written := make([]string, 0, len(files))

	for name, src := range files {
		path := filepath.Join(dir, name)

		if err := os.WriteFile(path, src, util.PermFile); err != nil {
			return nil, errors.Wrapf(err, "failed to WriteFile %s", path)
		}

		written = append(written, path)
	}

	slices.Sort(written)

	return written, nil
}

func execute(tmpl *template.Template, data interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := tmpl.Execute(buf, data); err != nil {
		return nil, errors.Wrap(err, "failed to Execute template")
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "failed to format generated source")
	}

	return src, nil
}
