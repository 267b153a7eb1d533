package note

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func rawNote(order binary.ByteOrder, name string, typ uint32, desc []byte) []byte {
	buf := &bytes.Buffer{}
	namesz := uint32(0)
	if name != "" {
		namesz = uint32(len(name)) + 1
	}
	binary.Write(buf, order, namesz)
	binary.Write(buf, order, uint32(len(desc)))
	binary.Write(buf, order, typ)
	if namesz > 0 {
		buf.WriteString(name)
		buf.WriteByte(0)
		for buf.Len()%4 != 0 {
			buf.WriteByte(0)
		}
	}
	buf.Write(desc)
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func collect(t *testing.T, it *Iterator) []Note {
	t.Helper()
	var res []Note
	for it.Next() {
		res = append(res, it.Note())
	}
	require.NoError(t, it.Err())
	return res
}

func TestIterator(t *testing.T) {
	testcases := []struct {
		name  string
		order binary.ByteOrder
		notes []Note
	}{
		{
			name:  "single",
			order: binary.LittleEndian,
			notes: []Note{
				{Name: "GNU", Type: TypeGNUBuildID, Desc: []byte{1, 2, 3, 4, 5}},
			},
		},
		{
			name:  "several with unpadded sizes",
			order: binary.LittleEndian,
			notes: []Note{
				{Name: "GNU", Type: TypeGNUBuildID, Desc: make([]byte, 20)},
				{Name: "Go", Type: 4, Desc: []byte("buildid/abc")},
				{Name: "LINUX", Type: 0x200, Desc: []byte{7}},
			},
		},
		{
			name:  "big endian",
			order: binary.BigEndian,
			notes: []Note{
				{Name: "GNU", Type: TypeGNUABITag, Desc: make([]byte, 16)},
			},
		},
		{
			name:  "empty name",
			order: binary.LittleEndian,
			notes: []Note{
				{Name: "", Type: 1, Desc: []byte{1, 2, 3, 4}},
			},
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.name, func(t *testing.T) {
			raw := []byte{}
			for _, n := range testcase.notes {
				raw = append(raw, rawNote(testcase.order, n.Name, n.Type, n.Desc)...)
			}
			it := NewIterator(testcase.order, bytes.NewReader(raw), 0, uint64(len(raw)))
			require.Equal(t, testcase.notes, collect(t, it))
		})
	}
}

func TestIteratorEmptyRange(t *testing.T) {
	it := NewIterator(binary.LittleEndian, bytes.NewReader(nil), 0, 0)
	require.False(t, it.Next())
	require.NoError(t, it.Err())
	// Next stays false once done.
	require.False(t, it.Next())
}

func TestIteratorTruncatedHeader(t *testing.T) {
	raw := rawNote(binary.LittleEndian, "GNU", TypeGNUBuildID, make([]byte, 8))
	raw = append(raw, 1, 2, 3) // trailing partial header

	it := NewIterator(binary.LittleEndian, bytes.NewReader(raw), 0, uint64(len(raw)))
	require.True(t, it.Next())
	require.False(t, it.Next())
	require.Error(t, it.Err())
}

func TestIteratorRecordExceedsRange(t *testing.T) {
	raw := rawNote(binary.LittleEndian, "GNU", TypeGNUBuildID, make([]byte, 0x40))

	it := NewIterator(binary.LittleEndian, bytes.NewReader(raw), 0, uint64(len(raw)-8))
	require.False(t, it.Next())
	require.Error(t, it.Err())
}

func TestBuildID(t *testing.T) {
	id := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03, 0x04}
	raw := append(
		rawNote(binary.LittleEndian, "GNU", TypeGNUABITag, make([]byte, 16)),
		rawNote(binary.LittleEndian, "GNU", TypeGNUBuildID, id)...,
	)

	got, err := BuildID(NewIterator(binary.LittleEndian, bytes.NewReader(raw), 0, uint64(len(raw))))
	require.NoError(t, err)
	require.Equal(t, "deadbeef01020304", got)
}

func TestBuildIDMissing(t *testing.T) {
	raw := rawNote(binary.LittleEndian, "GNU", TypeGNUABITag, make([]byte, 16))

	_, err := BuildID(NewIterator(binary.LittleEndian, bytes.NewReader(raw), 0, uint64(len(raw))))
	require.ErrorIs(t, err, ErrNoBuildID)
}

func TestBuildIDDecodeError(t *testing.T) {
	raw := rawNote(binary.LittleEndian, "GNU", TypeGNUABITag, make([]byte, 16))

	_, err := BuildID(NewIterator(binary.LittleEndian, bytes.NewReader(raw), 0, uint64(len(raw)+8)))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoBuildID)
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "NT_GNU_BUILD_ID", TypeString("GNU", TypeGNUBuildID))
	require.Equal(t, "NT_GNU_ABI_TAG", TypeString("GNU", TypeGNUABITag))
	require.Equal(t, "NT_PRSTATUS", TypeString("CORE", TypePrstatus))
	require.Equal(t, "NT_PRPSINFO", TypeString("CORE", TypePrpsinfo))
	require.Equal(t, "0x9", TypeString("CORE", 9))
	require.Equal(t, "0x1234", TypeString("FreeBSD", 0x1234))
}
