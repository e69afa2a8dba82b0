// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package wire

import (
	"bytes"
	"fmt"
)

// bufferStream adapts a *bytes.Buffer to the Stream interface. Writes
// append to the buffer; reads consume from its front. Position counts
// bytes consumed, not bytes written.
type bufferStream struct {
	buf *bytes.Buffer
	pos int64
}

// NewBufferStream wraps buf as a Stream. Use it when both reading and
// writing the same logical byte sequence in sequence (encode, then
// decode what was just encoded).
func NewBufferStream(buf *bytes.Buffer) Stream {
	return &bufferStream{buf: buf}
}

func (b *bufferStream) ReadByte() (byte, error) {
	c, err := b.buf.ReadByte()
	if err != nil {
		return 0, err
	}
	b.pos++
	return c, nil
}

func (b *bufferStream) ReadN(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeLength
	}
	out := make([]byte, n)
	got, err := b.buf.Read(out)
	b.pos += int64(got)
	if got < n {
		return nil, fmt.Errorf("%w: wanted %d bytes, got %d", ErrTruncated, n, got)
	}
	return out, err
}

func (b *bufferStream) WriteByte(c byte) error {
	return b.buf.WriteByte(c)
}

func (b *bufferStream) WriteN(p []byte) error {
	_, err := b.buf.Write(p)
	return err
}

func (b *bufferStream) Position() int64 {
	return b.pos
}

func (b *bufferStream) AtEnd() bool {
	return b.buf.Len() == 0
}

// byteStream adapts a fixed []byte slice to the Stream interface for
// reading, and grows a backing slice when used for writing.
type byteStream struct {
	data []byte
	pos  int
}

// NewBytesStream wraps a []byte for reading and/or writing. Writes
// append past the initial contents; Bytes returns the whole backing
// slice, bytes already read included.
func NewBytesStream(data []byte) *BytesStream {
	return &BytesStream{s: &byteStream{data: data}}
}

// BytesStream is the concrete type returned by NewBytesStream, exposing
// Bytes() in addition to satisfying Stream.
type BytesStream struct {
	s *byteStream
}

func (bs *BytesStream) ReadByte() (byte, error)     { return bs.s.ReadByte() }
func (bs *BytesStream) ReadN(n int) ([]byte, error) { return bs.s.ReadN(n) }
func (bs *BytesStream) WriteByte(b byte) error      { return bs.s.WriteByte(b) }
func (bs *BytesStream) WriteN(b []byte) error       { return bs.s.WriteN(b) }
func (bs *BytesStream) Position() int64             { return bs.s.Position() }
func (bs *BytesStream) AtEnd() bool                 { return bs.s.AtEnd() }

// Bytes returns the stream's whole backing slice: its initial contents,
// including bytes already read, followed by everything written.
func (bs *BytesStream) Bytes() []byte { return bs.s.data }

func (b *byteStream) ReadByte() (byte, error) {
	if b.pos >= len(b.data) {
		return 0, fmt.Errorf("%w: at end of stream", ErrTruncated)
	}
	c := b.data[b.pos]
	b.pos++
	return c, nil
}

func (b *byteStream) ReadN(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegativeLength
	}
	if b.pos+n > len(b.data) {
		return nil, fmt.Errorf("%w: wanted %d bytes, have %d", ErrTruncated, n, len(b.data)-b.pos)
	}
	out := b.data[b.pos : b.pos+n]
	b.pos += n
	return out, nil
}

func (b *byteStream) WriteByte(c byte) error {
	b.data = append(b.data, c)
	return nil
}

func (b *byteStream) WriteN(p []byte) error {
	b.data = append(b.data, p...)
	return nil
}

func (b *byteStream) Position() int64 {
	return int64(b.pos)
}

func (b *byteStream) AtEnd() bool {
	return b.pos >= len(b.data)
}

// BoundedStream wraps an inner Stream and reports AtEnd once limit
// bytes have been consumed relative to the position at construction
// time, implementing the read routine's max_size bound (spec §4.5).
type BoundedStream struct {
	inner Stream
	start int64
	limit int64
}

// NewBoundedStream bounds reads on inner to limit bytes from its
// current position. A limit of 0 means unbounded — AtEnd delegates to
// the inner stream only.
func NewBoundedStream(inner Stream, limit int64) *BoundedStream {
	return &BoundedStream{inner: inner, start: inner.Position(), limit: limit}
}

func (b *BoundedStream) ReadByte() (byte, error) { return b.inner.ReadByte() }
func (b *BoundedStream) ReadN(n int) ([]byte, error) {
	return b.inner.ReadN(n)
}
func (b *BoundedStream) WriteByte(c byte) error { return b.inner.WriteByte(c) }
func (b *BoundedStream) WriteN(p []byte) error  { return b.inner.WriteN(p) }
func (b *BoundedStream) Position() int64        { return b.inner.Position() }

// AtEnd reports true once the bound is reached, in addition to the
// inner stream's own end-of-stream condition.
func (b *BoundedStream) AtEnd() bool {
	if b.limit > 0 && b.inner.Position()-b.start >= b.limit {
		return true
	}
	return b.inner.AtEnd()
}
