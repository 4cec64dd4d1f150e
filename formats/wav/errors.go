// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"

	"github.com/ik5/eqplay/audio"
)

// All decode failures wrap audio.ErrDecode.
var (
	ErrNotWavFile            = fmt.Errorf("%w: not a WAV file", audio.ErrDecode)
	ErrOnlyPCM16bitSupported = fmt.Errorf("%w: only PCM 16-bit supported", audio.ErrDecode)
	ErrOnlyMonoSupported     = fmt.Errorf("%w: only single-channel audio supported", audio.ErrDecode)
	ErrUnsupportedSampleRate = fmt.Errorf("%w: unsupported sample rate", audio.ErrDecode)
	ErrUnsupportedWavChunks  = fmt.Errorf("%w: unsupported WAV chunks", audio.ErrDecode)
	ErrCorruptSample         = fmt.Errorf("%w: corrupt sample data", audio.ErrDecode)
)
