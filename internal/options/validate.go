// Package options holds checks shared by the functional-option entry points
// of the engine packages.
package options

import "github.com/erraggy/speclint/oaserrors"

// ValidateSingleInputSource fails unless exactly one of sources is true.
// The message for the failing case becomes the ConfigError message.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	n := 0
	for _, set := range sources {
		if set {
			n++
		}
	}
	switch {
	case n == 0:
		return &oaserrors.ConfigError{Option: "input source", Message: noSourceMsg}
	case n > 1:
		return &oaserrors.ConfigError{Option: "input source", Message: multiSourceMsg}
	}
	return nil
}
