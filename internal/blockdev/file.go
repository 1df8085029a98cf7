package blockdev

import (
	"fmt"
	"os"
)

// File is an os.File-backed BlockDevice over a fixed-length raw image
// file. The file is created (and truncated to blockSize*blockCount bytes)
// if it does not already exist at that size.
type File struct {
	f          *os.File
	blockSize  int
	blockCount int
}

// OpenFile opens (creating if necessary) path as a blockCount-block,
// blockSize-byte-per-block raw image file.
func OpenFile(path string, blockSize, blockCount int) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("blockdev: open %s: %w", path, err)
	}
	want := int64(blockSize) * int64(blockCount)
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.Size() != want {
		if err := f.Truncate(want); err != nil {
			f.Close()
			return nil, fmt.Errorf("blockdev: truncate %s: %w", path, err)
		}
	}
	return &File{f: f, blockSize: blockSize, blockCount: blockCount}, nil
}

func (d *File) BlockSize() int  { return d.blockSize }
func (d *File) BlockCount() int { return d.blockCount }

func (d *File) ReadBlock(blockNo int, dst []byte) error {
	if blockNo < 0 || blockNo >= d.blockCount {
		return fmt.Errorf("blockdev: block %d out of range [0,%d)", blockNo, d.blockCount)
	}
	if len(dst) != d.blockSize {
		return fmt.Errorf("blockdev: dst size %d != block size %d", len(dst), d.blockSize)
	}
	n, err := d.f.ReadAt(dst, int64(blockNo)*int64(d.blockSize))
	if err != nil {
		return fmt.Errorf("blockdev: read block %d: %w", blockNo, err)
	}
	if n != d.blockSize {
		return fmt.Errorf("blockdev: short read at block %d: %d bytes", blockNo, n)
	}
	return nil
}

func (d *File) WriteBlock(blockNo int, src []byte) error {
	if blockNo < 0 || blockNo >= d.blockCount {
		return fmt.Errorf("blockdev: block %d out of range [0,%d)", blockNo, d.blockCount)
	}
	if len(src) != d.blockSize {
		return fmt.Errorf("blockdev: src size %d != block size %d", len(src), d.blockSize)
	}
	n, err := d.f.WriteAt(src, int64(blockNo)*int64(d.blockSize))
	if err != nil {
		return fmt.Errorf("blockdev: write block %d: %w", blockNo, err)
	}
	if n != d.blockSize {
		return fmt.Errorf("blockdev: short write at block %d: %d bytes", blockNo, n)
	}
	return nil
}

// Close closes the underlying image file.
func (d *File) Close() error { return d.f.Close() }
