package mandel

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
)

const (
	codecMagic   = "MDLM"
	codecVersion = 1

	// MaxCodecResolution bounds the matrices DecodeResult accepts.
	MaxCodecResolution = 1 << 14

	// decodeChunk caps the counts preallocated ahead of the data actually read.
	decodeChunk = 1 << 16
)

var ErrCorruptMatrix = errors.New("corrupt matrix data")

// check reports a matrix whose shape or counts do not match the viewport.
func (res Result) check() error {
	v, m := res.Viewport, res.Matrix
	if m.Size != v.Resolution || len(m.Counts) != m.Size*m.Size {
		return fmt.Errorf("matrix %dx%d with %d counts for resolution %d: %w", m.Size, m.Size, len(m.Counts), v.Resolution, ErrCorruptMatrix)
	}
	for i, c := range m.Counts {
		if c < 0 || c > v.MaxIterations {
			return fmt.Errorf("count %d at %d outside [0, %d]: %w", c, i, v.MaxIterations, ErrCorruptMatrix)
		}
	}
	return nil
}

// codecHeader is the fixed-size part of the compressed body.
type codecHeader struct {
	CenterReal, CenterImag float64
	Zoom, EscapeRadius     float64
	Resolution             uint32
	MaxIterations          uint32
	Xmin, Xmax, Ymin, Ymax float64
}

// EncodeResult writes res as magic, version and a zstd frame holding the
// header and the row-major counts as little-endian uint32.
func EncodeResult(w io.Writer, res Result) error {
	v, m := res.Viewport, res.Matrix
	if err := res.check(); err != nil {
		return err
	}
	if v.MaxIterations < 0 || uint64(v.MaxIterations) > math.MaxUint32 || v.Resolution > MaxCodecResolution {
		return fmt.Errorf("viewport %+v does not fit the matrix format", v)
	}

	if _, err := io.WriteString(w, codecMagic); err != nil {
		return err
	}
	if _, err := w.Write([]byte{codecVersion}); err != nil {
		return err
	}

	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("zstd.NewWriter: %w", err)
	}
	bw := bufio.NewWriter(enc)

	h := codecHeader{
		CenterReal:    v.CenterReal,
		CenterImag:    v.CenterImag,
		Zoom:          v.Zoom,
		EscapeRadius:  v.EscapeRadius,
		Resolution:    uint32(v.Resolution),
		MaxIterations: uint32(v.MaxIterations),
		Xmin:          res.Region.Xmin,
		Xmax:          res.Region.Xmax,
		Ymin:          res.Region.Ymin,
		Ymax:          res.Region.Ymax,
	}
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		enc.Close()
		return fmt.Errorf("write header: %w", err)
	}

	var buf [4]byte
	for _, c := range m.Counts {
		binary.LittleEndian.PutUint32(buf[:], uint32(c))
		if _, err := bw.Write(buf[:]); err != nil {
			enc.Close()
			return fmt.Errorf("write counts: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return fmt.Errorf("flush: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("zstd close: %w", err)
	}
	return nil
}

// DecodeResult reads a Result written by EncodeResult.
func DecodeResult(r io.Reader) (Result, error) {
	var prefix [len(codecMagic) + 1]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return Result{}, fmt.Errorf("read magic: %w", err)
	}
	if string(prefix[:len(codecMagic)]) != codecMagic {
		return Result{}, fmt.Errorf("bad magic %q: %w", prefix[:len(codecMagic)], ErrCorruptMatrix)
	}
	if prefix[len(codecMagic)] != codecVersion {
		return Result{}, fmt.Errorf("unsupported version %d: %w", prefix[len(codecMagic)], ErrCorruptMatrix)
	}

	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return Result{}, fmt.Errorf("zstd.NewReader: %w", err)
	}
	defer dec.Close()
	br := bufio.NewReader(dec)

	var h codecHeader
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		return Result{}, fmt.Errorf("read header: %w", errors.Join(ErrCorruptMatrix, err))
	}
	if h.Resolution < 1 || h.Resolution > MaxCodecResolution {
		return Result{}, fmt.Errorf("resolution %d: %w", h.Resolution, ErrCorruptMatrix)
	}

	size := int(h.Resolution)
	maxIter := int(h.MaxIterations)
	// the header is untrusted, so counts grow with the data instead of the declared size
	total := size * size
	m := IterationMatrix{Size: size, Counts: make([]int, 0, min(total, decodeChunk))}
	var buf [4]byte
	for len(m.Counts) < total {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			return Result{}, fmt.Errorf("read counts: %w", errors.Join(ErrCorruptMatrix, err))
		}
		c := int(binary.LittleEndian.Uint32(buf[:]))
		if c > maxIter {
			return Result{}, fmt.Errorf("count %d above max iterations %d: %w", c, maxIter, ErrCorruptMatrix)
		}
		m.Counts = append(m.Counts, c)
	}

	return Result{
		Viewport: Viewport{
			CenterReal:    h.CenterReal,
			CenterImag:    h.CenterImag,
			Zoom:          h.Zoom,
			Resolution:    size,
			MaxIterations: maxIter,
			EscapeRadius:  h.EscapeRadius,
		},
		Region: Region{Xmin: h.Xmin, Xmax: h.Xmax, Ymin: h.Ymin, Ymax: h.Ymax},
		Matrix: m,
	}, nil
}
