package note

import (
	"encoding/hex"
	"fmt"
)

// Note types for records owned by "GNU".
const (
	TypeGNUABITag      = 1
	TypeGNUHWCap       = 2
	TypeGNUBuildID     = 3
	TypeGNUGoldVersion = 4
)

// Note types found in core files, owned by "CORE".
const (
	TypePrstatus = 1
	TypeFpregset = 2
	TypePrpsinfo = 3
)

const OwnerGNU = "GNU"

var ErrNoBuildID = fmt.Errorf("no GNU build-id note")

// BuildID drains the iterator and returns the hex-encoded descriptor of the
// first NT_GNU_BUILD_ID record owned by "GNU". ErrNoBuildID means the range
// decoded cleanly but carries no build id.
func BuildID(it *Iterator) (string, error) {
	for it.Next() {
		n := it.Note()
		if n.Name == OwnerGNU && n.Type == TypeGNUBuildID {
			return hex.EncodeToString(n.Desc), nil
		}
	}
	if err := it.Err(); err != nil {
		return "", err
	}
	return "", ErrNoBuildID
}

// TypeString names a note type for its owner, falling back to the raw value.
func TypeString(owner string, typ uint32) string {
	if owner == OwnerGNU {
		switch typ {
		case TypeGNUABITag:
			return "NT_GNU_ABI_TAG"
		case TypeGNUHWCap:
			return "NT_GNU_HWCAP"
		case TypeGNUBuildID:
			return "NT_GNU_BUILD_ID"
		case TypeGNUGoldVersion:
			return "NT_GNU_GOLD_VERSION"
		}
	}
	if owner == "CORE" {
		switch typ {
		case TypePrstatus:
			return "NT_PRSTATUS"
		case TypeFpregset:
			return "NT_FPREGSET"
		case TypePrpsinfo:
			return "NT_PRPSINFO"
		}
	}
	return fmt.Sprintf("%#x", typ)
}
