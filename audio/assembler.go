// Package audio assembles client-delivered audio fragments into a single
// decodable buffer for the transcription engine.
//
// Clients ship audio as a sequence of base64-encoded WAV blobs inside one
// websocket frame. Assemble decodes each blob, checks that the fragments
// share one PCM format, and splices their payloads under a single header.
package audio

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/veslo-ai/scribe/errors"
)

// DecodeFragment decodes one transport-safe audio fragment.
func DecodeFragment(fragment string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(fragment)
	if err != nil {
		return nil, errors.AudioDecode(err)
	}
	return data, nil
}

// Assemble decodes a batch of base64 WAV fragments and concatenates them in
// order into one WAV buffer. All fragments must agree on sample rate,
// channel count, and bit depth; the first fragment's header is the template.
func Assemble(fragments []string) ([]byte, error) {
	if len(fragments) == 0 {
		return nil, errors.AudioDecode(fmt.Errorf("no audio fragments supplied"))
	}

	var (
		template WAVHeader
		payload  bytes.Buffer
	)

	for i, fragment := range fragments {
		blob, err := DecodeFragment(fragment)
		if err != nil {
			return nil, err
		}

		header, data, err := parseWAV(blob)
		if err != nil {
			return nil, errors.AudioDecode(fmt.Errorf("fragment %d: %w", i, err))
		}

		if i == 0 {
			template = header
		} else if !compatible(template, header) {
			return nil, errors.AudioDecode(fmt.Errorf(
				"fragment %d: format mismatch (%dHz/%dch/%dbit vs %dHz/%dch/%dbit)",
				i, header.SampleRate, header.NumChannels, header.BitsPerSample,
				template.SampleRate, template.NumChannels, template.BitsPerSample))
		}

		payload.Write(data)
	}

	combined, err := encodeWAV(template, payload.Bytes())
	if err != nil {
		return nil, errors.AudioDecode(err)
	}
	return combined, nil
}

// compatible reports whether two fragments can be spliced without resampling.
func compatible(a, b WAVHeader) bool {
	return a.SampleRate == b.SampleRate &&
		a.NumChannels == b.NumChannels &&
		a.BitsPerSample == b.BitsPerSample
}
