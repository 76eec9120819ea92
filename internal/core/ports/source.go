package ports

import "context"

// ConfigSource loads raw configuration text, e.g. a saved running config or a
// baseline file.
//
//go:generate mockery --name=ConfigSource --output=./mocks --outpkg=mocks --case underscore
type ConfigSource interface {
	Type() string
	Read(ctx context.Context, location string) (string, error)
}
