// Package apiclient exposes the client builder.
package apiclient

import (
	"github.com/adamwoolhether/apiclient/client"
	"github.com/adamwoolhether/apiclient/config"
)

// New instantiates a new *client.Client with the provided options.
// If not specified, requests go through net/http's default transport.
func New(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}

// NewFromConfig loads the configuration described by loadOpts and builds
// a client from it. opts are applied after the loaded settings.
func NewFromConfig(loadOpts []config.LoaderOption, opts ...client.Option) (*client.Client, error) {
	cfg, err := config.Load(loadOpts...)
	if err != nil {
		return nil, err
	}

	return client.Build(append(cfg.Options(), opts...)...)
}
