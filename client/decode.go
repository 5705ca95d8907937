package client

import (
	"fmt"

	"github.com/adamwoolhether/apiclient/client/deferred"
	"github.com/go-viper/mapstructure/v2"
)

// Decode converts an extracted payload into T, matching struct fields by
// their `json` tags. Numbers decoded as float64 or [encoding/json.Number]
// convert to integer fields.
func Decode[T any](payload any) (T, error) {
	var out T

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: "json",
	})
	if err != nil {
		return out, fmt.Errorf("configuring decoder: %w", err)
	}

	if err := dec.Decode(payload); err != nil {
		return out, fmt.Errorf("decoding payload into %T: %w", out, err)
	}

	return out, nil
}

// As returns a Deferred that decodes the payload of d into T. Activating
// it activates d.
func As[T any](d *deferred.Deferred[any]) *deferred.Deferred[T] {
	return deferred.Map(d, Decode[T])
}
