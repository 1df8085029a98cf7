package blockfs

import "encoding/binary"

// entrySize is the packed on-disk size of a directory entry, per the
// cross-implementation layout mandated by the design spec:
// name[56] | size(u32) | first_blk(u16) | type(u8) | access_rights(u8).
const entrySize = 64

// Field offsets within a packed directory entry.
const (
	entOffName      = 0
	entOffSize      = 56
	entOffFirstBlk  = 60
	entOffType      = 62
	entOffRights    = 63
	entNameFieldLen = 56
)

// entry is the decoded, in-memory form of a 64-byte directory record.
type entry struct {
	name         string
	size         uint32
	firstBlk     uint16
	typ          uint8
	accessRights uint8
}

// free reports whether this slot (decoded from an all-zero or name[0]==0
// record) is unused.
func (e entry) free() bool { return len(e.name) == 0 }

// encode packs e into dst[:entrySize], little-endian, per spec.md §6.
func (e entry) encode(dst []byte) {
	clear(dst[:entrySize])
	copy(dst[entOffName:entOffName+entNameFieldLen], e.name)
	binary.LittleEndian.PutUint32(dst[entOffSize:], e.size)
	binary.LittleEndian.PutUint16(dst[entOffFirstBlk:], e.firstBlk)
	dst[entOffType] = e.typ
	dst[entOffRights] = e.accessRights
}

// decodeEntry unpacks a 64-byte record from src[:entrySize].
func decodeEntry(src []byte) entry {
	var e entry
	if src[entOffName] == 0 {
		return e // free slot: empty name.
	}
	nameEnd := entOffName
	for nameEnd < entOffName+entNameFieldLen && src[nameEnd] != 0 {
		nameEnd++
	}
	e.name = string(src[entOffName:nameEnd])
	e.size = binary.LittleEndian.Uint32(src[entOffSize:])
	e.firstBlk = binary.LittleEndian.Uint16(src[entOffFirstBlk:])
	e.typ = src[entOffType]
	e.accessRights = src[entOffRights]
	return e
}

// slotEntry returns the decoded entry at slot index idx within a
// directory block buffer buf.
func slotEntry(buf []byte, idx int) entry {
	return decodeEntry(buf[idx*entrySize : idx*entrySize+entrySize])
}

// putSlotEntry encodes e into slot idx within directory block buffer buf.
func putSlotEntry(buf []byte, idx int, e entry) {
	e.encode(buf[idx*entrySize : idx*entrySize+entrySize])
}
