// This file is part of armlink.
//
// armlink is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// armlink is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with armlink.  If not, see <https://www.gnu.org/licenses/>.

package reader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/picoelf/armlink/curated"
)

// Reader reads integers and byte sequences from a seekable stream.
type Reader struct {
	r     io.ReadSeeker
	order binary.ByteOrder

	// scratch buffer for integer reads
	buf [8]byte
}

// New is the preferred method of initialisation for the Reader type. The
// byte order is little-endian.
func New(r io.ReadSeeker) *Reader {
	return &Reader{
		r:     r,
		order: binary.LittleEndian,
	}
}

// SetByteOrder changes the byte order used by the integer reads.
func (rd *Reader) SetByteOrder(order binary.ByteOrder) {
	rd.order = order
}

// ByteOrder returns the current byte order.
func (rd *Reader) ByteOrder() binary.ByteOrder {
	return rd.order
}

// Offset returns the current position in the stream.
func (rd *Reader) Offset() (int64, error) {
	o, err := rd.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, curated.Errorf(SeekError, err)
	}
	return o, nil
}

// Seek to an absolute position in the stream. Seeking past the end of the
// stream is not an error but the next read will fail.
func (rd *Reader) Seek(offset int64) error {
	if offset < 0 {
		return curated.Errorf(SeekError, errors.New("negative offset"))
	}
	if _, err := rd.r.Seek(offset, io.SeekStart); err != nil {
		return curated.Errorf(SeekError, err)
	}
	return nil
}

// Size returns the length of the stream. The current position is unchanged.
func (rd *Reader) Size() (int64, error) {
	start, err := rd.Offset()
	if err != nil {
		return 0, err
	}

	end, err := rd.r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, curated.Errorf(SeekError, err)
	}

	if _, err := rd.r.Seek(start, io.SeekStart); err != nil {
		return 0, curated.Errorf(SeekError, err)
	}

	return end, nil
}

// Skip n bytes relative to the current position. The skipped bytes must
// exist.
func (rd *Reader) Skip(n int64) error {
	if n < 0 {
		return curated.Errorf(SeekError, errors.New("negative skip"))
	}

	start, err := rd.Offset()
	if err != nil {
		return err
	}

	end, err := rd.r.Seek(0, io.SeekEnd)
	if err != nil {
		return curated.Errorf(SeekError, err)
	}

	if start+n > end {
		_, _ = rd.r.Seek(start, io.SeekStart)
		return curated.Errorf(TruncatedRead, n, start)
	}

	return rd.Seek(start + n)
}

// ReadFull fills the slice from the stream.
func (rd *Reader) ReadFull(p []byte) error {
	if len(p) == 0 {
		return nil
	}

	start, err := rd.Offset()
	if err != nil {
		return err
	}

	_, err = io.ReadFull(rd.r, p)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return curated.Errorf(TruncatedRead, len(p), start)
		}
		return curated.Errorf(StreamError, err)
	}

	return nil
}

// Expect reads len(magic) bytes and compares them with magic.
func (rd *Reader) Expect(magic []byte) error {
	start, err := rd.Offset()
	if err != nil {
		return err
	}

	b := make([]byte, len(magic))
	if err := rd.ReadFull(b); err != nil {
		return err
	}

	if !bytes.Equal(b, magic) {
		return curated.Errorf(BadMagic, start)
	}

	return nil
}

// Uint reads an unsigned integer of the given size in bytes. Supported sizes
// are 1, 2, 4 and 8.
func (rd *Reader) Uint(size int) (uint64, error) {
	switch size {
	case 1, 2, 4, 8:
	default:
		return 0, curated.Errorf(BadSize, size)
	}

	b := rd.buf[:size]
	if err := rd.ReadFull(b); err != nil {
		return 0, err
	}

	switch size {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(rd.order.Uint16(b)), nil
	case 4:
		return uint64(rd.order.Uint32(b)), nil
	}
	return rd.order.Uint64(b), nil
}

// Int reads a signed integer of the given size in bytes. The value is sign
// extended.
func (rd *Reader) Int(size int) (int64, error) {
	v, err := rd.Uint(size)
	if err != nil {
		return 0, err
	}

	switch size {
	case 1:
		return int64(int8(v)), nil
	case 2:
		return int64(int16(v)), nil
	case 4:
		return int64(int32(v)), nil
	}
	return int64(v), nil
}

// Uint8 reads a single byte.
func (rd *Reader) Uint8() (uint8, error) {
	v, err := rd.Uint(1)
	return uint8(v), err
}

// Uint16 reads a 16 bit value.
func (rd *Reader) Uint16() (uint16, error) {
	v, err := rd.Uint(2)
	return uint16(v), err
}

// Uint32 reads a 32 bit value.
func (rd *Reader) Uint32() (uint32, error) {
	v, err := rd.Uint(4)
	return uint32(v), err
}
