// Package jsoncodec registers a JSON gRPC codec. Services that exchange plain
// Go structs use it with the "json" content subtype instead of protobuf.
package jsoncodec

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// Name is the codec name and content subtype.
const Name = "json"

// Codec marshals messages with encoding/json.
type Codec struct{}

// Marshal encodes v.
func (Codec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec marshal %T: %w", v, err)
	}
	return data, nil
}

// Unmarshal decodes data into v.
func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec unmarshal %T: %w", v, err)
	}
	return nil
}

// Name implements encoding.Codec.
func (Codec) Name() string {
	return Name
}

func init() {
	encoding.RegisterCodec(Codec{})
}

// CallOption selects the JSON codec for a client call or connection.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(Name)
}

// DialOption makes JSON the default codec for every call on a connection.
func DialOption() grpc.DialOption {
	return grpc.WithDefaultCallOptions(CallOption())
}
