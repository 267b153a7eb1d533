// Package elfseg models the segments of an ELF binary: raw data access,
// interpreter and note segment roles, and the strict section-in-segment
// containment test used by binutils-style tools.
package elfseg

import (
	"debug/elf"
	"fmt"
	"io"
)

// ErrUnknownField is returned by Field and SectionField for a name the
// decoded header does not have.
var ErrUnknownField = fmt.Errorf("unknown header field")

// Segment is a loadable region described by one decoded program-header
// entry. It holds the header by value and reads bytes through an
// io.ReaderAt, so it never owns or repositions a shared stream.
type Segment struct {
	Hdr    elf.ProgHeader
	reader io.ReaderAt
}

func New(hdr elf.ProgHeader, r io.ReaderAt) *Segment {
	return &Segment{Hdr: hdr, reader: r}
}

// Data reads the segment's file-backed bytes, [Off, Off+Filesz).
// A short read is an error from the reader and is returned as-is.
func (s *Segment) Data() ([]byte, error) {
	if s.Hdr.Filesz == 0 {
		return []byte{}, nil
	}
	res := make([]byte, s.Hdr.Filesz)
	if _, err := s.reader.ReadAt(res, int64(s.Hdr.Off)); err != nil {
		return nil, fmt.Errorf("segment data at %#x: %w", s.Hdr.Off, err)
	}
	return res, nil
}

// Field returns a program-header field by its ELF name (p_offset, p_vaddr,
// ...). Typed access through Hdr is preferred; this exists for callers that
// carry field names around.
func (s *Segment) Field(name string) (uint64, error) {
	switch name {
	case "p_type":
		return uint64(s.Hdr.Type), nil
	case "p_flags":
		return uint64(s.Hdr.Flags), nil
	case "p_offset":
		return s.Hdr.Off, nil
	case "p_vaddr":
		return s.Hdr.Vaddr, nil
	case "p_paddr":
		return s.Hdr.Paddr, nil
	case "p_filesz":
		return s.Hdr.Filesz, nil
	case "p_memsz":
		return s.Hdr.Memsz, nil
	case "p_align":
		return s.Hdr.Align, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// SectionField returns a section-header field by its ELF name (sh_addr,
// sh_size, ...). sh_name is not included: debug/elf resolves it to the
// Name string while decoding.
func SectionField(sec *elf.SectionHeader, name string) (uint64, error) {
	switch name {
	case "sh_type":
		return uint64(sec.Type), nil
	case "sh_flags":
		return uint64(sec.Flags), nil
	case "sh_addr":
		return sec.Addr, nil
	case "sh_offset":
		return sec.Offset, nil
	case "sh_size":
		return sec.Size, nil
	case "sh_link":
		return uint64(sec.Link), nil
	case "sh_info":
		return uint64(sec.Info), nil
	case "sh_addralign":
		return sec.Addralign, nil
	case "sh_entsize":
		return sec.Entsize, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}
