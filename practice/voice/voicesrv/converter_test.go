package voicesrv

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildWAVHeader fabricates a minimal RIFF/WAVE header with the given byte
// rate and data chunk size. No sample data is appended.
func buildWAVHeader(byteRate, dataSize uint32) []byte {
	buf := make([]byte, 0, 44)
	buf = append(buf, []byte("RIFF")...)
	buf = binary.LittleEndian.AppendUint32(buf, 36+dataSize)
	buf = append(buf, []byte("WAVE")...)

	buf = append(buf, []byte("fmt ")...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, 1)     // PCM
	buf = binary.LittleEndian.AppendUint16(buf, 1)     // mono
	buf = binary.LittleEndian.AppendUint32(buf, 16000) // sample rate
	buf = binary.LittleEndian.AppendUint32(buf, byteRate)
	buf = binary.LittleEndian.AppendUint16(buf, 2)  // block align
	buf = binary.LittleEndian.AppendUint16(buf, 16) // bits per sample

	buf = append(buf, []byte("data")...)
	buf = binary.LittleEndian.AppendUint32(buf, dataSize)
	return buf
}

func TestWAVDuration(t *testing.T) {
	// 32000 bytes/sec at 16kHz mono 16-bit, 64000 bytes of samples.
	header := buildWAVHeader(32000, 64000)
	assert.InDelta(t, 2.0, wavDuration(header), 0.001)
}

func TestWAVDurationSkipsUnknownChunks(t *testing.T) {
	header := buildWAVHeader(32000, 16000)

	// Splice a LIST chunk between fmt and data.
	list := append([]byte("LIST"), 0, 0, 0, 0)
	binary.LittleEndian.PutUint32(list[4:], 0)
	spliced := append(append(append([]byte{}, header[:36]...), list...), header[36:]...)

	assert.InDelta(t, 0.5, wavDuration(spliced), 0.001)
}

func TestWAVDurationRejectsGarbage(t *testing.T) {
	assert.Zero(t, wavDuration(nil))
	assert.Zero(t, wavDuration([]byte("not a wav file at all")))

	// Valid RIFF magic but data chunk before any fmt chunk.
	buf := append([]byte("RIFF"), 0, 0, 0, 0)
	buf = append(buf, []byte("WAVE")...)
	buf = append(buf, []byte("data")...)
	buf = binary.LittleEndian.AppendUint32(buf, 100)
	assert.Zero(t, wavDuration(buf))
}
