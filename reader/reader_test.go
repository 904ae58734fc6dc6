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

package reader_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/picoelf/armlink/curated"
	"github.com/picoelf/armlink/reader"
	"github.com/picoelf/armlink/test"
)

func TestIntegers(t *testing.T) {
	data := []byte{0x7f, 'E', 'L', 'F', 0x01, 0x02, 0xfe, 0xff, 0x78, 0x56, 0x34, 0x12}
	rd := reader.New(bytes.NewReader(data))

	test.DemandSuccess(t, rd.Expect([]byte{0x7f, 'E', 'L', 'F'}))

	v8, err := rd.Uint8()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v8, 0x01)

	v8, err = rd.Uint8()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v8, 0x02)

	i16, err := rd.Int(2)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, i16, -2)

	v32, err := rd.Uint32()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v32, 0x12345678)

	// end of stream
	_, err = rd.Uint8()
	test.ExpectSuccess(t, curated.Is(err, reader.TruncatedRead))
}

func TestByteOrder(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56, 0x78}
	rd := reader.New(bytes.NewReader(data))
	rd.SetByteOrder(binary.BigEndian)

	v16, err := rd.Uint16()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v16, 0x1234)

	rd.SetByteOrder(binary.LittleEndian)
	v16, err = rd.Uint16()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v16, 0x7856)
}

func TestMagic(t *testing.T) {
	rd := reader.New(bytes.NewReader([]byte("\x7fELG")))
	err := rd.Expect([]byte("\x7fELF"))
	test.ExpectSuccess(t, curated.Is(err, reader.BadMagic))

	// too short for the magic
	rd = reader.New(bytes.NewReader([]byte("\x7fE")))
	err = rd.Expect([]byte("\x7fELF"))
	test.ExpectSuccess(t, curated.Is(err, reader.TruncatedRead))
}

func TestSeekAndSkip(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	rd := reader.New(bytes.NewReader(data))

	test.DemandSuccess(t, rd.Seek(4))
	v, err := rd.Uint8()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 4)

	test.ExpectSuccess(t, rd.Skip(2))
	v, err = rd.Uint8()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 7)

	// skipping past the end fails and leaves the position unchanged
	test.DemandSuccess(t, rd.Seek(6))
	err = rd.Skip(4)
	test.ExpectSuccess(t, curated.Is(err, reader.TruncatedRead))
	o, err := rd.Offset()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, o, 6)

	test.ExpectSuccess(t, curated.Is(rd.Seek(-1), reader.SeekError))
}

func TestSize(t *testing.T) {
	rd := reader.New(bytes.NewReader(make([]byte, 10)))
	test.DemandSuccess(t, rd.Seek(3))

	n, err := rd.Size()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 10)

	// position is unchanged
	o, err := rd.Offset()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, o, 3)
}

func TestIntSizes(t *testing.T) {
	rd := reader.New(bytes.NewReader(bytes.Repeat([]byte{0xff}, 8)))
	v, err := rd.Int(8)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, -1)

	_, err = rd.Uint(3)
	test.ExpectSuccess(t, curated.Is(err, reader.BadSize))
}

type brokenStream struct {
	io.Seeker
}

func (brokenStream) Read(p []byte) (int, error) {
	return 0, errors.New("device error")
}

func TestStreamError(t *testing.T) {
	rd := reader.New(brokenStream{Seeker: bytes.NewReader(nil)})
	_, err := rd.Uint32()
	test.ExpectSuccess(t, curated.Is(err, reader.StreamError))
}
