// Package chunk frames binary payloads for streamed transfer.
package chunk

// DefaultSize is the fixed frame size used for both upload and download
// directions.
const DefaultSize = 1024

// Split cuts data into ordered frames of at most size bytes. Every frame
// except the last is exactly size bytes; a zero-length trailing frame is
// never produced. Empty input yields no frames. The returned slices alias
// data, so a split can be re-walked without re-splitting.
func Split(data []byte, size int) [][]byte {
	if size <= 0 {
		size = DefaultSize
	}
	if len(data) == 0 {
		return nil
	}
	parts := make([][]byte, 0, (len(data)+size-1)/size)
	for start := 0; start < len(data); start += size {
		end := start + size
		if end > len(data) {
			end = len(data)
		}
		parts = append(parts, data[start:end])
	}
	return parts
}
