package elfseg

import (
	"debug/elf"
	"encoding/binary"
	"io"

	"github.com/elfkit/elfseg/note"
)

// FileModel is the part of the owning file-level model that note decoding
// needs beyond the segment's byte range.
type FileModel interface {
	Endian() binary.ByteOrder
}

// NoteSegment is a PT_NOTE segment. It knows how to decode the note
// records in its file range.
type NoteSegment struct {
	Segment
	file FileModel
}

func NewNote(hdr elf.ProgHeader, r io.ReaderAt, file FileModel) *NoteSegment {
	return &NoteSegment{Segment{Hdr: hdr, reader: r}, file}
}

// Notes returns a fresh single-pass iterator over the segment's note
// records. Each call starts over at the beginning of the range, so repeated
// calls yield independent, equal sequences.
func (s *NoteSegment) Notes() *note.Iterator {
	return note.NewIterator(s.file.Endian(), s.reader, s.Hdr.Off, s.Hdr.Filesz)
}
