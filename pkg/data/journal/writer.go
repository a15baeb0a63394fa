package journal

import (
	"bufio"
	"fmt"
	"os"
	"unsafe"
)

// Writer appends fixed-width records to a journal file. Not safe for
// concurrent use; the engine writes from the router goroutine only.
type Writer[T any] struct {
	path string
	file *os.File
	w    *bufio.Writer
}

func NewWriter[T any](path string) *Writer[T] {
	return &Writer[T]{
		path: path,
	}
}

func (wr *Writer[T]) Open() error {
	file, err := os.OpenFile(wr.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("unable to open journal %q: %w", wr.path, err)
	}
	wr.file = file
	wr.w = bufio.NewWriter(file)
	return nil
}

func (wr *Writer[T]) Write(data T) error {
	size := int(unsafe.Sizeof(data))
	buffer := unsafe.Slice((*byte)(unsafe.Pointer(&data)), size)

	if _, err := wr.w.Write(buffer); err != nil {
		return fmt.Errorf("unable to write record: %w", err)
	}
	return nil
}

func (wr *Writer[T]) Close() error {
	if err := wr.w.Flush(); err != nil {
		_ = wr.file.Close()
		return fmt.Errorf("unable to flush journal: %w", err)
	}
	return wr.file.Close()
}
