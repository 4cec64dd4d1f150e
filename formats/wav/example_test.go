// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/eqplay/audio"
	"github.com/ik5/eqplay/formats/wav"
)

// Example_roundTrip writes a mono file and decodes it again.
func Example_roundTrip() {
	dir, _ := os.MkdirTemp("", "wav-example")
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "tone.wav")
	samples := []int16{100, 200, 300, 400, 500}
	if err := wav.WriteWAV16File(path, 44100, samples); err != nil {
		fmt.Println("write error:", err)
		return
	}

	buf, err := wav.Decoder{SampleRate: 44100}.DecodeFile(path)
	if err != nil {
		fmt.Println("decode error:", err)
		return
	}

	fmt.Printf("Sample rate: %d Hz\n", buf.SampleRate)
	fmt.Printf("Samples: %v\n", buf.Samples)
	// Output:
	// Sample rate: 44100 Hz
	// Samples: [100 200 300 400 500]
}

// Example_notFound shows how a missing input is reported.
func Example_notFound() {
	_, err := wav.Decoder{}.DecodeFile("/definitely/not/here.wav")
	fmt.Println(errors.Is(err, audio.ErrNotFound))
	// Output:
	// true
}
