// Package blockfs implements a small block-oriented filesystem on top of
// a fixed-geometry raw block device: a FAT-style allocator, single-block
// directories, and a path resolver wired to a spec.md-shaped operation set
// (create, cat, ls, cp, mv, rm, append, mkdir, cd, pwd, chmod, format).
//
// There is no journaling, no multi-threading, and no cache beyond the
// in-memory FAT: every operation that mutates allocation or linkage
// persists the FAT before returning.
package blockfs

import (
	"context"
	"log/slog"
)

// Entry kinds.
const (
	TypeFile uint8 = 0
	TypeDir  uint8 = 1
)

// Access right bits, combined in an entry's AccessRights bitmask.
const (
	Read    uint8 = 4
	Write   uint8 = 2
	Execute uint8 = 1
)

// Reserved block numbers. ROOT_BLOCK and FAT_BLOCK are never allocated
// to user data and their FAT slots are always EOF.
const (
	RootBlock = 0
	FATBlock  = 1
)

// FAT sentinel values.
const (
	fatFree int16 = 0
	fatEOF  int16 = -1
)

// MaxNameLen is the maximum entry name length in bytes, excluding the
// terminating NUL (the on-disk name field is 56 bytes wide).
const MaxNameLen = 55

// BlockDevice is the raw, fixed-geometry, block-addressed store the
// filesystem runs on. Implementations must transfer exactly BlockSize()
// bytes per call and fail closed on out-of-range block numbers; there is
// no partial-write visibility and no caching at this layer.
type BlockDevice interface {
	ReadBlock(blockNo int, dst []byte) error
	WriteBlock(blockNo int, src []byte) error
	BlockSize() int
	BlockCount() int
}

// FS is a mounted blockfs volume. The zero value is not usable; construct
// one with Mount.
type FS struct {
	dev BlockDevice

	blockSize  int
	blockCount int
	entsPerDir int // directory entries per block: blockSize/entrySize

	fat []int16 // in-memory FAT, length blockCount

	cwd int // current directory block number, process-local

	log *slog.Logger
}

// Mount loads the FAT from FATBlock and prepares fsys for use. If the
// device looks uninitialized (the FAT's reserved slots aren't EOF), Mount
// formats it fresh, matching the teacher's "initializes a fresh FAT and
// calls format" startup contract.
func Mount(dev BlockDevice) (*FS, error) {
	if dev.BlockSize() < entrySize || dev.BlockSize()%2 != 0 {
		return nil, newErr(IOError, "blockfs: block size too small or odd")
	}
	maxBlocks := dev.BlockSize() / 2
	if dev.BlockCount() > maxBlocks {
		return nil, newErr(IOError, "blockfs: block count exceeds 16-bit FAT bound")
	}
	fsys := &FS{
		dev:        dev,
		blockSize:  dev.BlockSize(),
		blockCount: dev.BlockCount(),
		entsPerDir: dev.BlockSize() / entrySize,
		fat:        make([]int16, dev.BlockCount()),
		cwd:        RootBlock,
	}
	if err := fsys.loadFAT(); err != nil {
		fsys.trace("mount:fresh", slog.String("reason", err.Error()))
		if err := fsys.Format(); err != nil {
			return nil, err
		}
	}
	return fsys, nil
}

// SetLogger attaches a structured logger. A nil logger (the default)
// silently disables all tracing, matching the teacher's logattrs no-op.
func (fsys *FS) SetLogger(log *slog.Logger) { fsys.log = log }

// BlockSize returns the device's block size in bytes.
func (fsys *FS) BlockSize() int { return fsys.blockSize }

// BlockCount returns the device's total block count.
func (fsys *FS) BlockCount() int { return fsys.blockCount }

const slogLevelTrace = slog.LevelDebug - 2

func (fsys *FS) logattrs(level slog.Level, msg string, attrs ...slog.Attr) {
	if fsys.log != nil {
		fsys.log.LogAttrs(context.Background(), level, msg, attrs...)
	}
}

func (fsys *FS) trace(msg string, attrs ...slog.Attr) { fsys.logattrs(slogLevelTrace, msg, attrs...) }
func (fsys *FS) debug(msg string, attrs ...slog.Attr) { fsys.logattrs(slog.LevelDebug, msg, attrs...) }
func (fsys *FS) info(msg string, attrs ...slog.Attr)  { fsys.logattrs(slog.LevelInfo, msg, attrs...) }
func (fsys *FS) warn(msg string, attrs ...slog.Attr)  { fsys.logattrs(slog.LevelWarn, msg, attrs...) }
func (fsys *FS) logerror(msg string, attrs ...slog.Attr) {
	fsys.logattrs(slog.LevelError, msg, attrs...)
}

func (fsys *FS) readBlock(blockNo int, dst []byte) error {
	fsys.trace("dev:read", slog.Int("block", blockNo))
	if err := fsys.dev.ReadBlock(blockNo, dst); err != nil {
		fsys.logerror("dev:read", slog.Int("block", blockNo), slog.String("err", err.Error()))
		return newErr(IOError, err.Error())
	}
	return nil
}

func (fsys *FS) writeBlock(blockNo int, src []byte) error {
	fsys.trace("dev:write", slog.Int("block", blockNo))
	if err := fsys.dev.WriteBlock(blockNo, src); err != nil {
		fsys.logerror("dev:write", slog.Int("block", blockNo), slog.String("err", err.Error()))
		return newErr(IOError, err.Error())
	}
	return nil
}
