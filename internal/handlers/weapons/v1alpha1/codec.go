package v1alpha1

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the content subtype every weapon deck service speaks
const CodecName = "json"

// Codec carries request and response messages as JSON
type Codec struct{}

func init() {
	encoding.RegisterCodec(Codec{})
}

// Marshal encodes a message
func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes a message
func (Codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Name is the codec's registered content subtype
func (Codec) Name() string {
	return CodecName
}
