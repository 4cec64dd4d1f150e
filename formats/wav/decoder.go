// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/eqplay/audio"
	"github.com/ik5/eqplay/utils"
)

// DefaultSampleRate is the only rate accepted when Decoder.SampleRate is zero.
const DefaultSampleRate = 44100

const (
	bytesPerSample = 2
	pcmFormat      = 1
	// extensibleFormat carries the real format in a sub-format GUID.
	extensibleFormat = 0xFFFE
	// streamingSize is the data chunk size written by encoders that did not
	// know the length up front. The samples then run to the end of the file.
	streamingSize = 0xFFFFFFFF
	// extensibleFmtSize is the fmt chunk body size of WAVE_FORMAT_EXTENSIBLE.
	extensibleFmtSize = 40
)

// guidTail is the part of a KSDATAFORMAT_SUBTYPE GUID that follows the
// two-byte format code.
var guidTail = []byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

// Policy selects how a decoder treats samples it cannot read.
type Policy int

const (
	// Strict fails the whole decode on the first corrupt sample.
	Strict Policy = iota
	// Lenient drops corrupt samples and keeps what was readable.
	Lenient
)

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Decoder reads single-channel 16-bit PCM WAV at exactly one sample rate.
type Decoder struct {
	SampleRate int
	Policy     Policy
}

func (d Decoder) sampleRate() int {
	if d.SampleRate > 0 {
		return d.SampleRate
	}
	return DefaultSampleRate
}

// Decode implements audio.Decoder. go-audio needs to seek, so readers that
// can't are buffered in memory first.
func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", audio.ErrDecode, err)
		}
		rs = bytes.NewReader(data)
	}

	return d.newStream(rs, nil)
}

// Open validates the file at path and returns a Stream positioned at the
// first sample. The stream owns the file; Close releases it.
func (d Decoder) Open(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", audio.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w", err)
	}

	s, err := d.newStream(f, f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return s, nil
}

// DecodeFile reads every sample of the file at path into a Buffer.
// Under Strict a single corrupt sample fails the call and no Buffer is
// returned.
func (d Decoder) DecodeFile(path string) (*audio.Buffer, error) {
	s, err := d.Open(path)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	return s.ReadAll()
}

func (d Decoder) newStream(rs io.ReadSeeker, closer io.Closer) (*Stream, error) {
	dec := gowav.NewDecoder(rs)

	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return nil, ErrNotWavFile
	}

	format := dec.WavAudioFormat
	if format == extensibleFormat {
		format = extensibleSubFormat(rs)
	}
	if format != pcmFormat || dec.BitDepth != 16 {
		return nil, fmt.Errorf("%w: format %d, %d bits", ErrOnlyPCM16bitSupported, dec.WavAudioFormat, dec.BitDepth)
	}
	if dec.NumChans != 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrOnlyMonoSupported, dec.NumChans)
	}
	if int(dec.SampleRate) != d.sampleRate() {
		return nil, fmt.Errorf("%w: %d Hz, want %d Hz", ErrUnsupportedSampleRate, dec.SampleRate, d.sampleRate())
	}

	if err := dec.FwdToPCM(); err != nil || dec.PCMChunk == nil {
		return nil, ErrUnsupportedWavChunks
	}

	// go-audio rounds odd sizes up to the pad byte and wraps 0xFFFFFFFF to
	// zero, so the size is read from the chunk header again.
	size, err := dataChunkSize(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavChunks, err)
	}

	s := &Stream{
		data:       rs,
		closer:     closer,
		policy:     d.Policy,
		sampleRate: int(dec.SampleRate),
		declared:   -1,
		buf:        make([]byte, 4096),
	}
	if size != streamingSize {
		s.data = io.LimitReader(rs, int64(size))
		s.declared = int(size / bytesPerSample)
	}

	return s, nil
}

// dataChunkSize returns the size field of the data chunk whose header rs has
// just passed. rs is left where it was.
func dataChunkSize(rs io.ReadSeeker) (uint32, error) {
	if _, err := rs.Seek(-4, io.SeekCurrent); err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	var size uint32
	if err := binary.Read(rs, binary.LittleEndian, &size); err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	return size, nil
}

// extensibleSubFormat returns the format code held in the sub-format GUID of
// a WAVE_FORMAT_EXTENSIBLE fmt chunk, or 0 when the chunk is malformed.
// go-audio discards the extension, so the fmt chunk is located again from
// the start of the file. rs is left where it was.
func extensibleSubFormat(rs io.ReadSeeker) uint16 {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0
	}
	defer rs.Seek(pos, io.SeekStart)

	// RIFF id, RIFF size, WAVE id.
	if _, err := rs.Seek(12, io.SeekStart); err != nil {
		return 0
	}

	var hdr [8]byte
	for {
		if _, err := io.ReadFull(rs, hdr[:]); err != nil {
			return 0
		}
		size := int64(binary.LittleEndian.Uint32(hdr[4:]))

		if string(hdr[:4]) != "fmt " {
			if _, err := rs.Seek(size+size%2, io.SeekCurrent); err != nil {
				return 0
			}
			continue
		}

		if size < extensibleFmtSize {
			return 0
		}
		body := make([]byte, extensibleFmtSize)
		if _, err := io.ReadFull(rs, body); err != nil {
			return 0
		}
		if !bytes.Equal(body[26:], guidTail) {
			return 0
		}
		return binary.LittleEndian.Uint16(body[24:])
	}
}

// Stream reads samples from the data chunk of a validated WAV file.
// It implements audio.Source.
type Stream struct {
	data       io.Reader
	closer     io.Closer
	policy     Policy
	sampleRate int
	declared   int // samples announced by the data chunk header, -1 if open
	read       int
	done       bool
	buf        []byte
	pcm        []int16
}

func (s *Stream) SampleRate() int { return s.sampleRate }
func (s *Stream) Channels() int   { return 1 }
func (s *Stream) BufSize() int    { return len(s.buf) / bytesPerSample }

// Len is the sample count the file header announces, or -1 when the header
// leaves the length open and the samples run to the end of the file.
func (s *Stream) Len() int { return s.declared }

func (s *Stream) Close() error {
	if s.closer == nil {
		return nil
	}

	err := s.closer.Close()
	s.closer = nil
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadPCM fills dst with raw 16-bit samples. It returns io.EOF once the data
// chunk is exhausted and ErrCorruptSample, under Strict, when the chunk ends
// in a partial sample or is shorter than its header claims.
func (s *Stream) ReadPCM(dst []int16) (int, error) {
	if s.done {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	raw := s.buf[:need]

	n, err := io.ReadFull(s.data, raw)
	samples := n / bytesPerSample
	for i := range samples {
		dst[i] = int16(binary.LittleEndian.Uint16(raw[i*bytesPerSample:]))
	}
	s.read += samples

	switch {
	case err == nil:
		return samples, nil
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		s.done = true
		if cerr := s.checkComplete(n % bytesPerSample); cerr != nil {
			return samples, cerr
		}
		return samples, io.EOF
	default:
		s.done = true
		return samples, fmt.Errorf("%w: %w", ErrCorruptSample, err)
	}
}

// checkComplete decides, at end of data, whether anything was lost.
func (s *Stream) checkComplete(partial int) error {
	if s.policy == Lenient {
		return nil
	}

	if partial != 0 {
		return fmt.Errorf("%w: partial sample after %d samples", ErrCorruptSample, s.read)
	}
	if s.declared >= 0 && s.read < s.declared {
		return fmt.Errorf("%w: data ends after %d of %d samples", ErrCorruptSample, s.read, s.declared)
	}

	return nil
}

// ReadSamples implements audio.Source on top of ReadPCM.
func (s *Stream) ReadSamples(dst []float32) (int, error) {
	if cap(s.pcm) < len(dst) {
		s.pcm = make([]int16, len(dst))
	}
	pcm := s.pcm[:len(dst)]

	n, err := s.ReadPCM(pcm)
	for i := range n {
		dst[i] = utils.Int16ToFloat32(pcm[i])
	}

	return n, err
}

// ReadAll drains the remaining samples into a Buffer.
func (s *Stream) ReadAll() (*audio.Buffer, error) {
	out := make([]int16, 0, max(s.declared-s.read, 0))
	chunk := make([]int16, 4096)

	for {
		n, err := s.ReadPCM(chunk)
		out = append(out, chunk[:n]...)

		if err == io.EOF {
			return audio.NewBuffer(s.sampleRate, out), nil
		}
		if err != nil {
			return nil, err
		}
	}
}
