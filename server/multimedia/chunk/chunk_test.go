package chunk

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitRoundTrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		{},
		[]byte("x"),
		bytes.Repeat([]byte{0xAB}, 1023),
		bytes.Repeat([]byte{0xCD}, 1024),
		bytes.Repeat([]byte{0xEF}, 1025),
		bytes.Repeat([]byte{0x01}, 10*1024+7),
	}
	for _, payload := range payloads {
		for _, size := range []int{1, 2, 3, 100, 1024, 4096} {
			parts := Split(payload, size)

			var assembled []byte
			for _, part := range parts {
				assembled = append(assembled, part...)
			}
			require.Equal(t, len(payload), len(assembled))
			assert.Equal(t, []byte(payload), []byte(assembled))
		}
	}
}

func TestSplitFrameBounds(t *testing.T) {
	payload := bytes.Repeat([]byte{0x42}, 5000)
	size := 1024
	parts := Split(payload, size)

	require.Len(t, parts, 5)
	for i, part := range parts {
		assert.LessOrEqual(t, len(part), size)
		if i < len(parts)-1 {
			assert.Len(t, part, size)
		}
	}
	assert.Len(t, parts[len(parts)-1], 5000%1024)
}

func TestSplitEmptyInputEmitsNoFrames(t *testing.T) {
	assert.Nil(t, Split(nil, 1024))
	assert.Nil(t, Split([]byte{}, 1024))
}

func TestSplitExactMultipleSuppressesEmptyTail(t *testing.T) {
	payload := bytes.Repeat([]byte{0x11}, 2048)
	parts := Split(payload, 1024)

	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 1024)
	assert.Len(t, parts[1], 1024)
}

func TestSplitIsRestartable(t *testing.T) {
	payload := bytes.Repeat([]byte{0x33}, 3000)
	parts := Split(payload, 1024)

	first := make([]int, 0, len(parts))
	for _, part := range parts {
		first = append(first, len(part))
	}
	second := make([]int, 0, len(parts))
	for _, part := range parts {
		second = append(second, len(part))
	}
	assert.Equal(t, first, second)
}

func TestSplit2500BytesInto3Frames(t *testing.T) {
	payload := bytes.Repeat([]byte{0x55}, 2500)
	parts := Split(payload, 1024)

	require.Len(t, parts, 3)
	assert.Len(t, parts[0], 1024)
	assert.Len(t, parts[1], 1024)
	assert.Len(t, parts[2], 452)
}

func TestSplitNonPositiveSizeUsesDefault(t *testing.T) {
	payload := bytes.Repeat([]byte{0x77}, DefaultSize+1)
	parts := Split(payload, 0)

	require.Len(t, parts, 2)
	assert.Len(t, parts[0], DefaultSize)
	assert.Len(t, parts[1], 1)
}
