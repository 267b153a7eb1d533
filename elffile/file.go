// Package elffile carries the decoded file-level view of an ELF binary and
// hands out segment models for its program headers. Container decoding
// itself is delegated to debug/elf.
package elffile

import (
	"debug/elf"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	bufra "github.com/avvmoto/buf-readerat"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/elfkit/elfseg"
	"github.com/elfkit/elfseg/note"
)

var ErrNoInterp = fmt.Errorf("no PT_INTERP segment")

type File struct {
	elf.FileHeader
	Progs    []elf.ProgHeader
	Sections []elf.SectionHeader

	reader  io.ReaderAt
	closer  io.Closer
	logger  log.Logger
	metrics *Metrics
}

type Option func(*File)

func WithLogger(l log.Logger) Option { return func(f *File) { f.logger = l } }

// WithMetrics attaches counters; m may be nil.
func WithMetrics(m *Metrics) Option { return func(f *File) { f.metrics = m } }

// NewFile decodes the headers of the ELF image behind r and keeps r for
// segment data access. r must stay usable for the life of the File and of
// every segment handed out.
func NewFile(r io.ReaderAt, opts ...Option) (*File, error) {
	res := &File{reader: r, logger: log.NewNopLogger()}
	for _, o := range opts {
		o(res)
	}
	ef, err := elf.NewFile(r)
	if err != nil {
		res.metrics.openError()
		return nil, fmt.Errorf("decode elf: %w", err)
	}
	res.FileHeader = ef.FileHeader
	res.Progs = make([]elf.ProgHeader, 0, len(ef.Progs))
	for i := range ef.Progs {
		res.Progs = append(res.Progs, ef.Progs[i].ProgHeader)
	}
	res.Sections = make([]elf.SectionHeader, 0, len(ef.Sections))
	for i := range ef.Sections {
		res.Sections = append(res.Sections, ef.Sections[i].SectionHeader)
	}
	level.Debug(res.logger).Log(
		"msg", "decoded elf headers",
		"class", res.Class,
		"byteorder", res.ByteOrder,
		"progs", len(res.Progs),
		"sections", len(res.Sections),
	)
	return res, nil
}

const openBufSize = 4 * 0x1000

// Open opens path behind a buffered reader-at and decodes its headers.
// Close releases the file handle.
func Open(path string, opts ...Option) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	res, err := NewFile(bufra.NewBufReaderAt(f, openBufSize), opts...)
	if err != nil {
		f.Close()
		return nil, err
	}
	res.closer = f
	return res, nil
}

func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}
	err := f.closer.Close()
	f.closer = nil
	return err
}

// Endian implements elfseg.FileModel.
func (f *File) Endian() binary.ByteOrder { return f.ByteOrder }

// Segments returns one segment model per program header.
func (f *File) Segments() []*elfseg.Segment {
	res := make([]*elfseg.Segment, 0, len(f.Progs))
	for _, p := range f.Progs {
		res = append(res, elfseg.New(p, f.reader))
	}
	return res
}

// Interp returns the first PT_INTERP entry as an interpreter segment.
func (f *File) Interp() (*elfseg.InterpSegment, error) {
	for _, p := range f.Progs {
		if p.Type == elf.PT_INTERP {
			return elfseg.NewInterp(p, f.reader), nil
		}
	}
	return nil, ErrNoInterp
}

// NoteSegments returns every PT_NOTE entry as a note segment owned by f.
func (f *File) NoteSegments() []*elfseg.NoteSegment {
	var res []*elfseg.NoteSegment
	for _, p := range f.Progs {
		if p.Type == elf.PT_NOTE {
			res = append(res, elfseg.NewNote(p, f.reader, f))
		}
	}
	return res
}

// SegmentsWithSection returns the segments that strictly contain sec, the
// way binutils-style tools map sections onto segments.
func (f *File) SegmentsWithSection(sec elf.SectionHeader) []*elfseg.Segment {
	var res []*elfseg.Segment
	for _, p := range f.Progs {
		seg := elfseg.New(p, f.reader)
		if seg.SectionInSegment(sec) {
			res = append(res, seg)
		}
	}
	return res
}

// BuildID scans the PT_NOTE segments for a GNU build-id and returns it
// hex-encoded. Undecodable note ranges are skipped.
func (f *File) BuildID() (string, error) {
	for _, ns := range f.NoteSegments() {
		id, err := note.BuildID(ns.Notes())
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, note.ErrNoBuildID) {
			f.metrics.noteError()
			level.Debug(f.logger).Log("msg", "skipping note segment", "off", ns.Hdr.Off, "err", err)
		}
	}
	return "", note.ErrNoBuildID
}
