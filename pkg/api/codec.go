package api

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// Codec is the Connect codec used by every service in this package. It
// registers under the name "json" so that requests with the standard
// application/json (unary) and application/connect+json (streaming) content
// types are accepted, and marshals plain Go structs with encoding/json.
type Codec struct{}

var _ connect.Codec = Codec{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", msg, err)
	}
	return nil
}

// WithCodec is the option that installs Codec on handlers and clients.
func WithCodec() connect.Option {
	return connect.WithCodec(Codec{})
}
