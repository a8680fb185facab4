package libio

import (
	"encoding/binary"
	"io"
)

// BinaryWriter remembers the first write error; every later call is a no-op
// that reports false, so a sequence of writes can be checked once at the end.
type BinaryWriter struct {
	Order binary.ByteOrder
	Dst   io.Writer
	Err   error
	// bytes written so far
	N       int
	scratch [4]byte
}

func NewBinaryWriter(w io.Writer) *BinaryWriter {
	return &BinaryWriter{Dst: w, Order: binary.LittleEndian}
}

func (bw *BinaryWriter) WriteBytes(p []byte) (ok bool) {
	if bw.Err != nil {
		return false
	}

	n, err := bw.Dst.Write(p)
	bw.N += n
	if err != nil {
		bw.Err = err
		return false
	}
	return true
}

func (bw *BinaryWriter) Write(p []byte) (n int, err error) {
	if !bw.WriteBytes(p) {
		return 0, bw.Err
	}
	return len(p), nil
}

func (bw *BinaryWriter) WriteUInt32(i uint32) (ok bool) {
	bw.Order.PutUint32(bw.scratch[:4], i)
	return bw.WriteBytes(bw.scratch[:4])
}

func (bw *BinaryWriter) WriteUInt16(i uint16) (ok bool) {
	bw.Order.PutUint16(bw.scratch[:2], i)
	return bw.WriteBytes(bw.scratch[:2])
}

// WriteRef writes fixed size data, see [binary.Write].
func (bw *BinaryWriter) WriteRef(data any) (ok bool) {
	if bw.Err != nil {
		return false
	}
	err := binary.Write(bw.Dst, bw.Order, data)
	if err != nil {
		bw.Err = err
		return false
	}
	bw.N += binary.Size(data)
	return true
}

type BinaryReader struct {
	Order     binary.ByteOrder
	Src       io.Reader
	Index     int
	LastIndex int
	Err       error
	scratch   [4]byte
}

func NewBinaryReader(r io.Reader) *BinaryReader {
	return &BinaryReader{Src: r, Order: binary.LittleEndian}
}

func (br *BinaryReader) readFull(p []byte) (ok bool) {
	if br.Err != nil {
		return false
	}

	n, err := io.ReadFull(br.Src, p)
	br.LastIndex = br.Index
	br.Index += n
	if err != nil {
		br.Err = err
		return false
	}
	return true
}

func (br *BinaryReader) Read(p []byte) (n int, err error) {
	return br.Src.Read(p)
}

func (br *BinaryReader) ReadUInt16(i *uint16) (ok bool) {
	if !br.readFull(br.scratch[:2]) {
		return false
	}
	*i = br.Order.Uint16(br.scratch[:2])
	return true
}

func (br *BinaryReader) ReadUInt32(i *uint32) (ok bool) {
	if !br.readFull(br.scratch[:4]) {
		return false
	}
	*i = br.Order.Uint32(br.scratch[:4])
	return true
}

// ReadRef reads fixed size data, see [binary.Read].
func (br *BinaryReader) ReadRef(data any) (ok bool) {
	if br.Err != nil {
		return false
	}
	err := binary.Read(br.Src, br.Order, data)
	br.LastIndex = br.Index
	if err != nil {
		br.Err = err
		return false
	}
	br.Index += binary.Size(data)
	return true
}
