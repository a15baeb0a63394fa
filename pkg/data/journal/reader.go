package journal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"

	"golang.org/x/exp/mmap"
)

var ErrEof = errors.New("EOF")

// Reader reads fixed-width records back out of a journal file through a
// memory map. T must have no interior padding; records are reinterpreted
// in place.
type Reader[T any] struct {
	path   string
	reader *mmap.ReaderAt
	buffer []byte
}

func NewReader[T any](path string) *Reader[T] {
	return &Reader[T]{
		path:   path,
		buffer: make([]byte, int(unsafe.Sizeof(*new(T)))),
	}
}

func (r *Reader[T]) Open() error {
	var err error
	r.reader, err = mmap.Open(r.path)
	if err != nil {
		return fmt.Errorf("unable to open journal %q: %w", r.path, err)
	}
	return nil
}

func (r *Reader[T]) Close() {
	_ = r.reader.Close()
}

func (r *Reader[T]) Read(index int64, data *T) error {
	offset := index * int64(len(r.buffer))

	n, err := r.reader.ReadAt(r.buffer, offset)
	if err != nil && err != io.EOF {
		return fmt.Errorf("unable to read: %w", err)
	}
	if n < len(r.buffer) {
		return ErrEof
	}

	*data = *(*T)(unsafe.Pointer(&r.buffer[0]))
	return nil
}

// Each walks every record in order, stopping at the first handler error.
func (r *Reader[T]) Each(handler func(index int64, data T) error) error {
	count, err := r.EntryCount()
	if err != nil {
		return err
	}

	var entry T
	for i := int64(0); i < count; i++ {
		if err := r.Read(i, &entry); err != nil {
			return err
		}
		if err := handler(i, entry); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reader[T]) EntryCount() (int64, error) {
	var entry T
	entrySize := int64(unsafe.Sizeof(entry))
	if entrySize == 0 {
		return 0, fmt.Errorf("size of T is zero")
	}

	fileInfo, err := os.Stat(r.path)
	if err != nil {
		return 0, fmt.Errorf("unable to stat journal %q: %w", r.path, err)
	}

	totalSize := fileInfo.Size()
	if totalSize%entrySize != 0 {
		return 0, fmt.Errorf("journal size is not a multiple of entry size")
	}

	return totalSize / entrySize, nil
}
