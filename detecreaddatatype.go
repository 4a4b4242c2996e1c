package trackload

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType reports the compression of a stream from its leading bytes.
// Byte code signatures from https://stackoverflow.com/a/19127748/199475
func DetectDataType(head []byte) DataType {
	for dt, sig := range byteCodeSigs {
		if bytes.HasPrefix(head, sig) {
			return dt
		}
	}

	return DataTypeNoCompression
}

// MaybeDecompressReadCloser wraps rc so that reads yield decompressed bytes
// when the stream starts with a known compression signature. Closing the
// result closes rc.
func MaybeDecompressReadCloser(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)

	// Peek returns io.EOF for streams shorter than the longest signature,
	// which is fine: whatever was read is still matched.
	head, err := br.Peek(6)
	if err != nil && err != io.EOF {
		rc.Close()
		return nil, err
	}

	var r io.Reader
	switch DetectDataType(head) {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			rc.Close()
			return nil, err
		}
		r = gz
	case DataTypeZip:
		// Only the first member of an archive is read.
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err != nil {
			rc.Close()
			return nil, err
		}
		r = zr
	case DataTypeBZip2:
		r = bzip2.NewReader(br)
	case DataTypeXZ:
		xr, err := xz.NewReader(br, 0)
		if err != nil {
			rc.Close()
			return nil, err
		}
		r = xr
	case DataTypeZ:
		zr, err := zlib.NewReader(br)
		if err != nil {
			rc.Close()
			return nil, err
		}
		r = zr
	default:
		r = br
	}

	return &readCloser{Reader: r, closer: rc}, nil
}

// readCloser pairs a (possibly decompressing) reader with the underlying
// stream's Close.
type readCloser struct {
	io.Reader
	closer io.Closer
}

func (c *readCloser) Close() error {
	return c.closer.Close()
}
