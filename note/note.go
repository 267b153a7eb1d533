// Package note decodes ELF note records from a fixed byte range of a file.
package note

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Note is one decoded note record.
type Note struct {
	Name string // owner name, without the trailing NUL
	Type uint32
	Desc []byte
}

// Note header: namesz, descsz, type. Name and descriptor bytes are each
// padded to a 4-byte boundary, on 64-bit files too (GNU and core notes use
// 4-byte alignment regardless of class).
const hdrSize = 12

// Iterator walks the note records in [off, off+size). It is single-pass;
// create a new one to iterate again.
type Iterator struct {
	order binary.ByteOrder
	r     io.ReaderAt
	off   uint64
	end   uint64
	cur   Note
	err   error
	done  bool
}

func NewIterator(order binary.ByteOrder, r io.ReaderAt, off, size uint64) *Iterator {
	return &Iterator{order: order, r: r, off: off, end: off + size}
}

// Next advances to the next record. It returns false when the range is
// exhausted or a record cannot be decoded; Err distinguishes the two.
func (it *Iterator) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	if it.end-it.off < hdrSize {
		if it.off != it.end {
			it.err = fmt.Errorf("note at %#x: truncated header", it.off)
		}
		it.done = true
		return false
	}
	var hdr [hdrSize]byte
	if _, err := it.r.ReadAt(hdr[:], int64(it.off)); err != nil {
		it.fail(fmt.Errorf("note header at %#x: %w", it.off, err))
		return false
	}
	namesz := uint64(it.order.Uint32(hdr[0:4]))
	descsz := uint64(it.order.Uint32(hdr[4:8]))
	typ := it.order.Uint32(hdr[8:12])

	if align4(namesz)+align4(descsz) > it.end-it.off-hdrSize {
		it.fail(fmt.Errorf("note at %#x: record exceeds range", it.off))
		return false
	}
	nameOff := it.off + hdrSize
	descOff := nameOff + align4(namesz)

	var name []byte
	if namesz > 0 {
		name = make([]byte, namesz)
		if _, err := it.r.ReadAt(name, int64(nameOff)); err != nil {
			it.fail(fmt.Errorf("note name at %#x: %w", nameOff, err))
			return false
		}
		name = bytes.TrimRight(name, "\x00")
	}
	var desc []byte
	if descsz > 0 {
		desc = make([]byte, descsz)
		if _, err := it.r.ReadAt(desc, int64(descOff)); err != nil {
			it.fail(fmt.Errorf("note desc at %#x: %w", descOff, err))
			return false
		}
	}

	it.cur = Note{Name: string(name), Type: typ, Desc: desc}
	it.off = descOff + align4(descsz)
	return true
}

// Note returns the record decoded by the last successful Next.
func (it *Iterator) Note() Note { return it.cur }

// Err returns the decoding error that stopped iteration, if any.
func (it *Iterator) Err() error { return it.err }

func (it *Iterator) fail(err error) {
	it.err = err
	it.done = true
}

func align4(n uint64) uint64 { return (n + 3) &^ 3 }
