// Package blockdev provides BlockDevice implementations for blockfs: an
// in-memory device for tests and ephemeral volumes, and a file-backed
// device for real raw disk images.
//
// Adapted from the BlockByteSlice/BlockMap test doubles of the teacher
// package this repository grew out of, promoted here from test-only types
// to small reusable ones since blockfs needs a concrete BlockDevice both
// in its own tests and in cmd/blockfsh.
package blockdev

import (
	"errors"
	"fmt"
)

// Memory is a byte-slice-backed BlockDevice, useful for tests and for an
// ephemeral in-RAM volume.
type Memory struct {
	blockSize int
	buf       []byte
}

// NewMemory allocates a zeroed in-memory device of blockCount blocks of
// blockSize bytes each.
func NewMemory(blockSize, blockCount int) *Memory {
	return &Memory{blockSize: blockSize, buf: make([]byte, blockSize*blockCount)}
}

func (m *Memory) BlockSize() int  { return m.blockSize }
func (m *Memory) BlockCount() int { return len(m.buf) / m.blockSize }

func (m *Memory) bounds(blockNo int) (int, int, error) {
	if blockNo < 0 || blockNo >= m.BlockCount() {
		return 0, 0, fmt.Errorf("blockdev: block %d out of range [0,%d)", blockNo, m.BlockCount())
	}
	off := blockNo * m.blockSize
	return off, off + m.blockSize, nil
}

func (m *Memory) ReadBlock(blockNo int, dst []byte) error {
	if len(dst) != m.blockSize {
		return errors.New("blockdev: dst size mismatch")
	}
	start, end, err := m.bounds(blockNo)
	if err != nil {
		return err
	}
	copy(dst, m.buf[start:end])
	return nil
}

func (m *Memory) WriteBlock(blockNo int, src []byte) error {
	if len(src) != m.blockSize {
		return errors.New("blockdev: src size mismatch")
	}
	start, end, err := m.bounds(blockNo)
	if err != nil {
		return err
	}
	copy(m.buf[start:end], src)
	return nil
}
