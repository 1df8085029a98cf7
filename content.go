package blockfs

import "io"

// chainLenForSize returns the number of blocks needed to hold size bytes:
// ceil(size/blockSize), or 1 for an empty payload (an entry always owns
// at least one block).
func (fsys *FS) chainLenForSize(size int) int {
	if size == 0 {
		return 1
	}
	return (size + fsys.blockSize - 1) / fsys.blockSize
}

// writeChainData writes payload across the already-allocated chain
// starting at first, zero-padding the tail of the final block.
func (fsys *FS) writeChainData(first int, payload []byte) error {
	off := 0
	for _, b := range fsys.chainBlocks(first) {
		buf := make([]byte, fsys.blockSize)
		off += copy(buf, payload[off:])
		if err := fsys.writeBlock(b, buf); err != nil {
			return err
		}
	}
	return nil
}

// readChainContent copies exactly size bytes from the chain starting at
// first into dst (len(dst) must equal size).
func (fsys *FS) readChainContent(first, size int, dst []byte) error {
	remaining, off := size, 0
	for _, b := range fsys.chainBlocks(first) {
		if remaining <= 0 {
			break
		}
		buf := make([]byte, fsys.blockSize)
		if err := fsys.readBlock(b, buf); err != nil {
			return err
		}
		n := min(remaining, fsys.blockSize)
		copy(dst[off:off+n], buf[:n])
		off += n
		remaining -= n
	}
	return nil
}

// writeChainContent writes exactly size bytes from the chain starting at
// first to w, with no added separators (Cat's contract).
func (fsys *FS) writeChainContent(first, size int, w io.Writer) error {
	remaining := size
	for _, b := range fsys.chainBlocks(first) {
		if remaining <= 0 {
			break
		}
		buf := make([]byte, fsys.blockSize)
		if err := fsys.readBlock(b, buf); err != nil {
			return err
		}
		n := min(remaining, fsys.blockSize)
		if _, err := w.Write(buf[:n]); err != nil {
			return newErr(IOError, err.Error())
		}
		remaining -= n
	}
	return nil
}

// appendToChain fills any remaining space in the chain's last block, then
// allocates and links new blocks for the rest of payload. It returns the
// new total size (curSize + len(payload)).
func (fsys *FS) appendToChain(firstBlk, curSize int, payload []byte) (uint32, error) {
	blocks := fsys.chainBlocks(firstBlk)
	lastBlock := blocks[len(blocks)-1]

	offset := curSize % fsys.blockSize
	lastBlockFull := curSize > 0 && offset == 0
	fill := 0
	if !lastBlockFull {
		fill = min(len(payload), fsys.blockSize-offset)
	}
	if fill > 0 {
		buf := make([]byte, fsys.blockSize)
		if err := fsys.readBlock(lastBlock, buf); err != nil {
			return 0, err
		}
		copy(buf[offset:], payload[:fill])
		if err := fsys.writeBlock(lastBlock, buf); err != nil {
			return 0, err
		}
	}

	rest := payload[fill:]
	if len(rest) > 0 {
		firstNew, err := fsys.allocateChain(fsys.chainLenForSize(len(rest)))
		if err != nil {
			return 0, err
		}
		fsys.fat[lastBlock] = int16(firstNew)
		if err := fsys.writeChainData(firstNew, rest); err != nil {
			return 0, err
		}
	}
	return uint32(curSize + len(payload)), nil
}
