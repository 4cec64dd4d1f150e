// SPDX-License-Identifier: EPL-2.0

package config

import "errors"

var (
	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrUnknownBackend is returned for a backend name that is not built in.
	ErrUnknownBackend = errors.New("unknown playback backend")
)
