package elfseg

import "debug/elf"

// SectionInSegment reports whether sec falls wholly inside the segment.
// It reproduces the strict rules of binutils' ELF_SECTION_IN_SEGMENT_STRICT
// macro (include/elf/internal.h) with the vma check enabled.
func (s *Segment) SectionInSegment(sec elf.SectionHeader) bool {
	segtype := s.Hdr.Type

	// Only PT_TLS, PT_GNU_RELRO and PT_LOAD segments can contain SHF_TLS
	// sections; PT_TLS and PT_PHDR segments hold nothing else.
	tls := sec.Flags&elf.SHF_TLS != 0
	if tls && (segtype == elf.PT_TLS || segtype == elf.PT_GNU_RELRO || segtype == elf.PT_LOAD) {
		// fall through to the range checks
	} else if tls || segtype == elf.PT_TLS || segtype == elf.PT_PHDR {
		return false
	}

	// PT_LOAD and similar segments only ever hold SHF_ALLOC sections.
	if sec.Flags&elf.SHF_ALLOC == 0 {
		switch segtype {
		case elf.PT_LOAD, elf.PT_DYNAMIC, elf.PT_GNU_EH_FRAME, elf.PT_GNU_RELRO, elf.PT_GNU_STACK:
			return false
		}
	}

	// For alloc sections the VMA range must be in bounds. Non-alloc
	// sections have no meaningful address, so the check is skipped.
	if sec.Flags&elf.SHF_ALLOC != 0 {
		if !rangeContains(sec.Addr, sec.Size, s.Hdr.Vaddr, s.Hdr.Memsz) {
			return false
		}
	}

	// A NOBITS section has no file bytes, so no file-offset test applies.
	if sec.Type == elf.SHT_NOBITS {
		return true
	}

	return rangeContains(sec.Offset, sec.Size, s.Hdr.Off, s.Hdr.Filesz)
}

// rangeContains reports whether [start, start+size) lies inside
// [base, base+extent). The last comparison is the strict one: an empty
// range sitting exactly at base+extent does not match, including the
// extent == 0 case.
func rangeContains(start, size, base, extent uint64) bool {
	if start < base {
		return false
	}
	d := start - base
	if size > extent || d > extent-size {
		return false
	}
	return d < extent
}
