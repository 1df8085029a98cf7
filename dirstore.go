package blockfs

import "log/slog"

// Reserved slot indices in every non-root directory block.
const (
	slotSelf   = 0 // "."
	slotParent = 1 // ".."
)

// readDir reads directory block dirBlock into a buffer interpreted as an
// array of entsPerDir fixed-size entries.
func (fsys *FS) readDir(dirBlock int) ([]byte, error) {
	buf := make([]byte, fsys.blockSize)
	if err := fsys.readBlock(dirBlock, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (fsys *FS) writeDir(dirBlock int, buf []byte) error {
	return fsys.writeBlock(dirBlock, buf)
}

// dirFind linear-scans dirBlock for an exact byte-wise name match and
// returns its slot index, or -1 if absent.
func (fsys *FS) dirFind(buf []byte, name string) int {
	for i := 0; i < fsys.entsPerDir; i++ {
		e := slotEntry(buf, i)
		if !e.free() && e.name == name {
			return i
		}
	}
	return -1
}

// dirFindEntry is dirFind plus decoding the matched slot.
func (fsys *FS) dirFindEntry(dirBlock int, name string) (entry, int, error) {
	buf, err := fsys.readDir(dirBlock)
	if err != nil {
		return entry{}, -1, err
	}
	idx := fsys.dirFind(buf, name)
	if idx < 0 {
		return entry{}, -1, newErr(NotFound, name)
	}
	return slotEntry(buf, idx), idx, nil
}

// dirInsert places e in the lowest-indexed free slot of dirBlock, after
// rejecting a duplicate name. It writes the block back on success.
func (fsys *FS) dirInsert(dirBlock int, e entry) error {
	fsys.trace("dir:insert", slog.Int("dir", dirBlock), slog.String("name", e.name))
	buf, err := fsys.readDir(dirBlock)
	if err != nil {
		return err
	}
	free := -1
	for i := 0; i < fsys.entsPerDir; i++ {
		cur := slotEntry(buf, i)
		if cur.free() {
			if free < 0 {
				free = i
			}
			continue
		}
		if cur.name == e.name {
			return newErr(Duplicate, e.name)
		}
	}
	if free < 0 {
		return newErr(DirectoryFull, "")
	}
	putSlotEntry(buf, free, e)
	return fsys.writeDir(dirBlock, buf)
}

// dirRemove zeroes the slot matching name and writes the block back.
func (fsys *FS) dirRemove(dirBlock int, name string) error {
	fsys.trace("dir:remove", slog.Int("dir", dirBlock), slog.String("name", name))
	buf, err := fsys.readDir(dirBlock)
	if err != nil {
		return err
	}
	idx := fsys.dirFind(buf, name)
	if idx < 0 {
		return newErr(NotFound, name)
	}
	clear(buf[idx*entrySize : idx*entrySize+entrySize])
	return fsys.writeDir(dirBlock, buf)
}

// dirEnumerate returns every non-empty entry in dirBlock, in slot order.
func (fsys *FS) dirEnumerate(dirBlock int) ([]entry, error) {
	buf, err := fsys.readDir(dirBlock)
	if err != nil {
		return nil, err
	}
	var out []entry
	for i := 0; i < fsys.entsPerDir; i++ {
		e := slotEntry(buf, i)
		if !e.free() {
			out = append(out, e)
		}
	}
	return out, nil
}

// dirEmpty reports whether every slot beyond slotSelf/slotParent is free.
// For the root directory (which has no "."/".." slots) every slot counts.
func (fsys *FS) dirEmpty(dirBlock int) (bool, error) {
	buf, err := fsys.readDir(dirBlock)
	if err != nil {
		return false, err
	}
	start := 0
	if dirBlock != RootBlock {
		start = slotParent + 1
	}
	for i := start; i < fsys.entsPerDir; i++ {
		if !slotEntry(buf, i).free() {
			return false, nil
		}
	}
	return true, nil
}

// initDirBlock zeroes a fresh directory block and, unless it is the root,
// populates "." (pointing at self) and ".." (pointing at parent).
func (fsys *FS) initDirBlock(block, parent int) error {
	buf := make([]byte, fsys.blockSize)
	if block != RootBlock {
		putSlotEntry(buf, slotSelf, entry{
			name: ".", typ: TypeDir, firstBlk: uint16(block),
			accessRights: Read | Write | Execute,
		})
		putSlotEntry(buf, slotParent, entry{
			name: "..", typ: TypeDir, firstBlk: uint16(parent),
			accessRights: Read | Write | Execute,
		})
	}
	return fsys.writeDir(block, buf)
}

// dirParent returns the block number of dirBlock's parent via its ".."
// slot. The root's parent is the root itself.
func (fsys *FS) dirParent(dirBlock int) (int, error) {
	if dirBlock == RootBlock {
		return RootBlock, nil
	}
	buf, err := fsys.readDir(dirBlock)
	if err != nil {
		return 0, err
	}
	return int(slotEntry(buf, slotParent).firstBlk), nil
}

// dirChildName finds, within parent, the non-"."/".." entry whose
// firstBlk equals child; used by pwd to reconstruct path components.
func (fsys *FS) dirChildName(parent, child int) (string, error) {
	buf, err := fsys.readDir(parent)
	if err != nil {
		return "", err
	}
	start := 0
	if parent != RootBlock {
		start = slotParent + 1
	}
	for i := start; i < fsys.entsPerDir; i++ {
		e := slotEntry(buf, i)
		if !e.free() && e.typ == TypeDir && int(e.firstBlk) == child {
			return e.name, nil
		}
	}
	return "", newErr(NotFound, "")
}
