package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// wavHeaderSize is the size of a canonical PCM WAV header.
const wavHeaderSize = 44

// WAVHeader represents the header structure of a canonical PCM WAV file.
type WAVHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // File size - 8 bytes
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16  // Number of channels
	SampleRate    uint32  // Sample rate
	ByteRate      uint32  // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16  // NumChannels * BitsPerSample / 8
	BitsPerSample uint16  // Bits per sample
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // Number of bytes in the data
}

// parseWAV validates a WAV blob and returns its header and PCM payload.
func parseWAV(data []byte) (WAVHeader, []byte, error) {
	var header WAVHeader
	if len(data) < wavHeaderSize {
		return header, nil, fmt.Errorf("WAV data too short: need at least %d bytes, got %d", wavHeaderSize, len(data))
	}

	buf := bytes.NewReader(data)
	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return header, nil, fmt.Errorf("failed to read WAV header: %w", err)
	}

	if string(header.ChunkID[:]) != "RIFF" {
		return header, nil, fmt.Errorf("invalid WAV file: missing RIFF header")
	}
	if string(header.Format[:]) != "WAVE" {
		return header, nil, fmt.Errorf("invalid WAV file: missing WAVE format")
	}
	if string(header.Subchunk1ID[:]) != "fmt " {
		return header, nil, fmt.Errorf("invalid WAV file: missing fmt chunk")
	}
	if string(header.Subchunk2ID[:]) != "data" {
		return header, nil, fmt.Errorf("invalid WAV file: missing data chunk")
	}
	if header.AudioFormat != 1 {
		return header, nil, fmt.Errorf("unsupported audio format: %d (only PCM is supported)", header.AudioFormat)
	}

	payload := data[wavHeaderSize:]
	if uint32(len(payload)) < header.Subchunk2Size {
		return header, nil, fmt.Errorf("truncated WAV data: header declares %d bytes, got %d", header.Subchunk2Size, len(payload))
	}

	return header, payload[:header.Subchunk2Size], nil
}

// encodeWAV rebuilds a WAV blob from a template header and a PCM payload,
// fixing up the declared sizes.
func encodeWAV(header WAVHeader, payload []byte) ([]byte, error) {
	header.Subchunk2Size = uint32(len(payload))
	header.ChunkSize = uint32(wavHeaderSize-8) + header.Subchunk2Size

	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+len(payload)))
	if err := binary.Write(buf, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}
	buf.Write(payload)

	return buf.Bytes(), nil
}
