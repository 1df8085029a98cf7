package blockfs

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// LsEntry is one row of a directory listing.
type LsEntry struct {
	Name         string
	Dir          bool
	AccessRights uint8
	Size         uint32
}

// RightsString renders AccessRights as a fixed three-character string in
// read/write/execute order, e.g. "rw-".
func (e LsEntry) RightsString() string {
	return rightsString(e.AccessRights)
}

func rightsString(rights uint8) string {
	b := [3]byte{'-', '-', '-'}
	if rights&Read != 0 {
		b[0] = 'r'
	}
	if rights&Write != 0 {
		b[1] = 'w'
	}
	if rights&Execute != 0 {
		b[2] = 'x'
	}
	return string(b[:])
}

// Ls lists the current directory, sorted by name ascending, byte-wise.
// The reserved "." and ".." bookkeeping slots are never reported.
func (fsys *FS) Ls() ([]LsEntry, error) {
	entries, err := fsys.dirEnumerate(fsys.cwd)
	if err != nil {
		return nil, err
	}
	out := make([]LsEntry, 0, len(entries))
	for _, e := range entries {
		if e.name == "." || e.name == ".." {
			continue
		}
		out = append(out, LsEntry{Name: e.name, Dir: e.typ == TypeDir, AccessRights: e.accessRights, Size: e.size})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// WriteLs renders entries in the tab-separated format that is the
// filesystem's sole machine-parseable surface: a fixed header row
// followed by one row per entry.
func WriteLs(w io.Writer, entries []LsEntry) error {
	if _, err := fmt.Fprintln(w, "name\t type\t accessrights\t size"); err != nil {
		return err
	}
	for _, e := range entries {
		kind, size := "file", strconv.FormatUint(uint64(e.Size), 10)
		if e.Dir {
			kind, size = "dir", "-"
		}
		if _, err := fmt.Fprintf(w, "%s\t %s\t %s\t %s\n", e.Name, kind, e.RightsString(), size); err != nil {
			return err
		}
	}
	return nil
}

// StatInfo is the metadata Stat reports for a single entry.
type StatInfo struct {
	Name         string
	Dir          bool
	Size         uint32
	AccessRights uint8
	FirstBlock   uint16
}

// Stat resolves path and reports its metadata without otherwise touching
// the filesystem. It is not named in spec.md's operation set; it exists
// so callers (the shell's "stat" command, tests) can inspect an entry
// without re-parsing Ls output.
func (fsys *FS) Stat(path string) (StatInfo, error) {
	e, _, name, err := fsys.resolveEntry(path)
	if err != nil {
		return StatInfo{}, err
	}
	return StatInfo{Name: name, Dir: e.typ == TypeDir, Size: e.size, AccessRights: e.accessRights, FirstBlock: e.firstBlk}, nil
}

// TreeEntry is one row of a recursive Tree listing: Path is relative to
// the directory Tree was called on.
type TreeEntry struct {
	Path         string
	Dir          bool
	Size         uint32
	AccessRights uint8
}

// Tree recursively lists path (or the current directory, if path is
// empty), depth-first, using the same per-directory sort as Ls. It is a
// supplemented, read-only composition of Ls/Cd-style traversal, added
// because single-block directories make multi-level enumeration cheap
// and the base operation set has no way to show more than one level.
func (fsys *FS) Tree(path string) ([]TreeEntry, error) {
	block := fsys.cwd
	if path != "" {
		var err error
		block, err = fsys.resolveDir(path)
		if err != nil {
			return nil, err
		}
	}
	var out []TreeEntry
	if err := fsys.treeWalk(block, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (fsys *FS) treeWalk(block int, prefix string, out *[]TreeEntry) error {
	entries, err := fsys.dirEnumerate(block)
	if err != nil {
		return err
	}
	filtered := entries[:0:0]
	for _, e := range entries {
		if e.name != "." && e.name != ".." {
			filtered = append(filtered, e)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].name < filtered[j].name })
	for _, e := range filtered {
		p := prefix + e.name
		*out = append(*out, TreeEntry{Path: p, Dir: e.typ == TypeDir, Size: e.size, AccessRights: e.accessRights})
		if e.typ == TypeDir {
			if err := fsys.treeWalk(int(e.firstBlk), p+"/", out); err != nil {
				return err
			}
		}
	}
	return nil
}

// DFInfo reports block usage across the whole volume.
type DFInfo struct {
	TotalBlocks int
	FreeBlocks  int
	UsedBlocks  int
}

// Df reports total/free/used block counts by scanning the in-memory FAT.
// The two reserved blocks (root directory, FAT) are excluded from Total.
func (fsys *FS) Df() DFInfo {
	free := fsys.freeBlockCount()
	total := fsys.blockCount - 2
	return DFInfo{TotalBlocks: total, FreeBlocks: free, UsedBlocks: total - free}
}

// ReadPayloadUntilBlank implements the standard input contract create
// uses: read lines until a blank (empty) line, which is consumed and not
// included; each non-blank line contributes its bytes plus a single '\n'.
func ReadPayloadUntilBlank(r *bufio.Reader) ([]byte, error) {
	var buf bytes.Buffer
	for {
		line, err := r.ReadString('\n')
		text := strings.TrimSuffix(line, "\n")
		if text == "" {
			return buf.Bytes(), nil
		}
		buf.WriteString(text)
		buf.WriteByte('\n')
		if err != nil {
			return buf.Bytes(), nil
		}
	}
}
