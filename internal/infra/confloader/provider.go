package confloader

import "errors"

// ErrReadBytesNotSupported is returned by ReadBytes on a map provider.
var ErrReadBytesNotSupported = errors.New("confloader: map provider has no byte form")

// mapProvider feeds a flat or nested map to koanf. koanf calls Read for
// providers that need no parser.
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

func (m mapProvider) Read() (map[string]any, error) {
	return m, nil
}
