// SPDX-License-Identifier: EPL-2.0

package eqplay

import "errors"

// ErrInvalidSampleRate is returned for a non-positive target rate.
var ErrInvalidSampleRate = errors.New("sample rate must be positive")
