package elfseg

import (
	"bytes"
	"debug/elf"
	"errors"
	"fmt"
	"io"
	"strings"
)

// InterpSegment is a PT_INTERP segment. It knows how to read the program
// interpreter path for the file.
type InterpSegment struct {
	Segment
}

func NewInterp(hdr elf.ProgHeader, r io.ReaderAt) *InterpSegment {
	return &InterpSegment{Segment{Hdr: hdr, reader: r}}
}

const interpChunk = 128

// InterpName reads the NUL-terminated interpreter path starting at the
// segment's file offset. The terminator is not part of the result. Hitting
// the end of the source before a terminator is an error.
func (s *InterpSegment) InterpName() (string, error) {
	var buf [interpChunk]byte
	sb := strings.Builder{}
	off := int64(s.Hdr.Off)
	for {
		n, err := s.reader.ReadAt(buf[:], off)
		if idx := bytes.IndexByte(buf[:n], 0); idx >= 0 {
			sb.Write(buf[:idx])
			return sb.String(), nil
		}
		sb.Write(buf[:n])
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("interp name at %#x: unterminated string", s.Hdr.Off)
			}
			return "", fmt.Errorf("interp name at %#x: %w", s.Hdr.Off, err)
		}
		off += int64(n)
	}
}
