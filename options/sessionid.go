package options

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sethvargo/go-envconfig"
)

var _ envconfig.Decoder = (*sessionID)(nil) // interface check

type sessionID string

// EnvDecode implements the envconfig.Decoder interface for the session ID.
func (s *sessionID) EnvDecode(in string) error {
	if in == "" {
		*s = sessionID(uuid.New().String())
		return nil
	}

	parsed, err := uuid.Parse(in)
	if err != nil {
		return errors.Wrap(err, "NECROSIS_SESSION_ID is set, but is not valid UUID")
	}

	*s = sessionID(parsed.String())

	return nil
}
