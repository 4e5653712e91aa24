package metadata

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tiffWithDateTime builds a little-endian TIFF whose first IFD holds a single
// DateTime (0x0132) ASCII tag.
func tiffWithDateTime(t *testing.T, value string) []byte {
	t.Helper()
	val := append([]byte(value), 0)

	var buf bytes.Buffer
	le := binary.LittleEndian
	buf.WriteString("II*\x00")
	require.NoError(t, binary.Write(&buf, le, uint32(8)))

	// IFD: one entry, then the next-IFD offset.
	const valueOffset = 8 + 2 + 12 + 4
	require.NoError(t, binary.Write(&buf, le, uint16(1)))
	require.NoError(t, binary.Write(&buf, le, uint16(0x0132)))
	require.NoError(t, binary.Write(&buf, le, uint16(2)))
	require.NoError(t, binary.Write(&buf, le, uint32(len(val))))
	require.NoError(t, binary.Write(&buf, le, uint32(valueOffset)))
	require.NoError(t, binary.Write(&buf, le, uint32(0)))

	require.Equal(t, valueOffset, buf.Len())
	buf.Write(val)
	return buf.Bytes()
}

func TestCaptureTime(t *testing.T) {
	data := tiffWithDateTime(t, "2023:06:15 10:30:00")

	got, ok := CaptureTime(data)
	require.True(t, ok)
	assert.Equal(t, "2023-06-15 10:30:00", got.Format("2006-01-02 15:04:05"))
}

func TestCaptureTimeWithoutExif(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "bare jpeg header", data: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}},
		{name: "png signature", data: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
		{name: "text", data: []byte("AAAA")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := CaptureTime(tt.data)
			assert.False(t, ok)
		})
	}
}
