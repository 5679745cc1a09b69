package audio

import (
	"encoding/binary"
	"io"
	"math"
)

const (
	wavHeaderSize = 44
	bitsPerSample = 16
	channels      = 1

	// StreamDataSize is the data chunk length advertised for an endless
	// stream: the largest size the RIFF length field can describe.
	StreamDataSize = math.MaxUint32 - (wavHeaderSize - 8)
)

type wavHeader struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

// WriteHeader writes a 44-byte PCM WAV header for dataSize bytes of 16-bit
// mono audio.
func WriteHeader(w io.Writer, sampleRate int, dataSize uint32) error {
	blockAlign := channels * bitsPerSample / 8
	h := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     dataSize + wavHeaderSize - 8,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   channels,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * blockAlign),
		BlockAlign:    uint16(blockAlign),
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}
	return binary.Write(w, binary.LittleEndian, h)
}

// WriteStreamHeader writes a header for an unbounded stream.
func WriteStreamHeader(w io.Writer, sampleRate int) error {
	return WriteHeader(w, sampleRate, StreamDataSize)
}

// AppendPCM16 appends samples to dst as little-endian signed 16-bit PCM,
// clipping to [-1, 1].
func AppendPCM16(dst []byte, samples []float64) []byte {
	for _, s := range samples {
		switch {
		case s > 1:
			s = 1
		case s < -1:
			s = -1
		}
		dst = binary.LittleEndian.AppendUint16(dst, uint16(int16(math.Round(s*math.MaxInt16))))
	}
	return dst
}
