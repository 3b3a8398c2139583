package options

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suborbital/vektor/vlog"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name        string
		configs     map[string]string
		want        Options
		wantErr     assert.ErrorAssertionFunc
		wantSession func(string) bool
	}{
		{
			name: "options gets assembled with everything set",
			configs: map[string]string{
				"NECROSIS_APP_NAME":                  "Necrosis Dev",
				"NECROSIS_SESSION_ID":                "63147f8b-cd25-4eba-acc2-6ff48e6970b6",
				"NECROSIS_CONSOLE_ADDR":              "127.0.0.1:7777",
				"NECROSIS_TRACER_TYPE":               "honeycomb",
				"NECROSIS_TRACER_SERVICENAME":        "necrosis-dev",
				"NECROSIS_TRACER_PROBABILITY":        "0.25",
				"NECROSIS_TRACER_COLLECTOR_ENDPOINT": "localhost:4317",
				"NECROSIS_TRACER_HONEYCOMB_ENDPOINT": "api.honeycomb.io:443",
				"NECROSIS_TRACER_HONEYCOMB_APIKEY":   "hcapikey",
				"NECROSIS_TRACER_HONEYCOMB_DATASET":  "hcdataset",
			},
			want: Options{
				AppName:     "Necrosis Dev",
				SessionID:   "63147f8b-cd25-4eba-acc2-6ff48e6970b6",
				ConsoleAddr: "127.0.0.1:7777",
				TracerConfig: TracerConfig{
					TracerType:  "honeycomb",
					ServiceName: "necrosis-dev",
					Probability: 0.25,
					Collector: &CollectorConfig{
						Endpoint: "localhost:4317",
					},
					HoneycombConfig: &HoneycombConfig{
						Endpoint: "api.honeycomb.io:443",
						APIKey:   "hcapikey",
						Dataset:  "hcdataset",
					},
				},
			},
			wantErr: assert.NoError,
			wantSession: func(s string) bool {
				return s == "63147f8b-cd25-4eba-acc2-6ff48e6970b6"
			},
		},
		{
			name:    "options get assembled with defaults when nothing is set",
			configs: map[string]string{},
			want: Options{
				AppName: "Necrosis",
				TracerConfig: TracerConfig{
					TracerType:  "none",
					ServiceName: "necrosis",
					Probability: 0.5,
				},
			},
			wantErr: assert.NoError,
			wantSession: func(s string) bool {
				_, err := uuid.Parse(s)
				return err == nil
			},
		},
		{
			name: "errors out on not-a-uuid",
			configs: map[string]string{
				"NECROSIS_SESSION_ID": "not a uuid",
			},
			want:        Options{},
			wantErr:     assert.Error,
			wantSession: func(s string) bool { return s == "" },
		},
		{
			name: "errors out on a bad probability",
			configs: map[string]string{
				"NECROSIS_TRACER_PROBABILITY": "often",
			},
			want:        Options{},
			wantErr:     assert.Error,
			wantSession: func(s string) bool { return s == "" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(envconfig.MapLookuper(tt.configs))

			tt.wantErr(t, err)
			assert.True(t, tt.wantSession(string(got.SessionID)), "unexpected session ID %q", got.SessionID)

			// session IDs may be generated, compare the rest
			got.SessionID = tt.want.SessionID
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	in := strings.NewReader("god_mode\n")
	out := new(bytes.Buffer)
	logger := vlog.Default(vlog.Level(vlog.LogLevelError))

	opts, err := New(envconfig.MapLookuper(map[string]string{
		"NECROSIS_APP_NAME": "from env",
	}),
		UseLogger(logger),
		UseInput(in),
		UseOutput(out),
		ConsoleAddr("127.0.0.1:9999"),
	)
	require.NoError(t, err)

	assert.Equal(t, "from env", opts.AppName)
	assert.Equal(t, "127.0.0.1:9999", opts.ConsoleAddr)
	assert.Same(t, logger, opts.Logger())
	assert.Equal(t, in, opts.Input())
	assert.Equal(t, out, opts.Output())
	assert.NotEmpty(t, opts.Session())
}

func TestNew_ModifiersOverrideEnvironment(t *testing.T) {
	opts, err := New(envconfig.MapLookuper(map[string]string{
		"NECROSIS_APP_NAME":     "from env",
		"NECROSIS_CONSOLE_ADDR": "127.0.0.1:1",
	}), AppName("from flag"), ConsoleAddr(""))
	require.NoError(t, err)

	assert.Equal(t, "from flag", opts.AppName)
	assert.Equal(t, "127.0.0.1:1", opts.ConsoleAddr, "an empty flag keeps the environment value")
	assert.NotNil(t, opts.Logger(), "a default logger is created")
	assert.Equal(t, os.Stdout, opts.Output(), "output defaults to stdout")
	assert.Nil(t, opts.Input())
}

func TestNew_PropagatesResolveErrors(t *testing.T) {
	_, err := New(envconfig.MapLookuper(map[string]string{
		"NECROSIS_SESSION_ID": "nope",
	}))

	assert.Error(t, err)
}
