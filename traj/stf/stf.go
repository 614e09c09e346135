/*
 * stf.go, part of goMSO.
 *
 * Copyright 2026 The goMSO developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*
Package stf implements a simple, compressed, plain-text trajectory format
for coordinate frames, in nm. Its use within goMSO is replaying parent-site
motion: read a frame into the topology coordinate matrix, and every virtual
site resolved afterwards reflects it, with no invalidation step in between.

The compression is chosen from the last letter of the file name: 'z' for
gzip, 'r' for flate, 'l' for lzw and anything else for zstd.
*/
package stf

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	v3 "github.com/askforarun/gmso/v3"
	"github.com/klauspost/compress/zstd"
)

const (
	lzwLitwidth int = 8
)

//Write!

type StfW struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
}

// NewWriter returns a writer of frames of natoms coordinates to the file
// name. The compression level, if given, is passed to the compressors that
// take one; an invalid level falls back to the default with a logged notice.
func NewWriter(name string, natoms int, compressionLevel ...int) (*StfW, error) {
	var level int = flate.DefaultCompression
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
		if level < flate.HuffmanOnly || level > flate.BestCompression {
			log.Printf("Invalid compression level %d for trajectory %s. Will use the default", level, name)
			level = flate.DefaultCompression
		}
	}
	S := new(StfW)
	var err error
	S.f, err = os.Create(name)
	if err != nil {
		return nil, err
	}
	zwriter := func(a io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(a, level)
	}
	gzipwriter := func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, level) }
	zstdwriter := func(a io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}

	var AnyNewWriter func(io.Writer) (io.WriteCloser, error)
	switch format(name) {
	case 'l':
		AnyNewWriter = func(a io.Writer) (io.WriteCloser, error) { return lzw.NewWriter(a, lzw.MSB, lzwLitwidth), nil }
	case 'z':
		AnyNewWriter = gzipwriter
	case 'r':
		AnyNewWriter = zwriter
	default:
		AnyNewWriter = zstdwriter
	}
	S.h, err = AnyNewWriter(S.f)
	if err != nil {
		return nil, Error{"Can't open compressor: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S.natoms = natoms
	S.filename = name
	S.writeable = true
	_, err = S.h.Write([]byte(fmt.Sprintf("** %d\n", S.natoms)))
	if err != nil {
		return nil, Error{"Can't write header: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	return S, nil
}

func format(name string) byte {
	return strings.ToLower(name)[len(name)-1]
}

func (S *StfW) Len() int {
	return S.natoms
}

// WNext writes the given coordinates as the next frame.
func (S *StfW) WNext(coord *v3.Matrix) error {
	if !S.writeable {
		return Error{"Attempted to write to a closed trajectory", S.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return Error{"Nil coordinates given", S.filename, []string{"WNext"}, true}
	}
	v := coord.NVecs()
	if v != S.natoms {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", v, S.natoms), S.filename, []string{"WNext"}, true}
	}
	for i := 0; i < v; i++ {
		str := fmt.Sprintf("%.4f %.4f %.4f\n", coord.At(i, 0), coord.At(i, 1), coord.At(i, 2))
		if _, err := S.h.Write([]byte(str)); err != nil {
			return Error{err.Error(), S.filename, []string{"WNext"}, true}
		}
	}
	if _, err := S.h.Write([]byte("*\n")); err != nil {
		return Error{err.Error(), S.filename, []string{"WNext"}, true}
	}
	return nil
}

// Close flushes and closes the trajectory. The object can not be used
// after this call.
func (S *StfW) Close() {
	if S == nil {
		return
	}
	if S.writeable {
		S.h.Close()
		S.f.Close()
	}
	S.writeable = false
}

//Read!

type StfR struct {
	f        *os.File
	z        io.ReadCloser
	h        *bufio.Reader
	natoms   int
	filename string
	readable bool
}

//*zstd.Decoder's Close returns nothing, so it doesn't implement
//io.ReadCloser by itself.
type stdql struct {
	closeql func()
	*zstd.Decoder
}

func (s stdql) Close() error {
	s.closeql()
	return nil
}

// New returns a reader for the trajectory in the file name.
func New(name string) (*StfR, error) {
	S := new(StfR)
	var err error
	S.f, err = os.Open(name)
	if err != nil {
		return nil, err
	}
	switch format(name) {
	case 'l':
		S.z = lzw.NewReader(S.f, lzw.MSB, lzwLitwidth)
	case 'z':
		S.z, err = gzip.NewReader(S.f)
	case 'r':
		S.z = flate.NewReader(S.f)
	default:
		var d *zstd.Decoder
		d, err = zstd.NewReader(S.f)
		if err == nil {
			S.z = stdql{closeql: d.Close, Decoder: d}
		}
	}
	if err != nil {
		return nil, Error{"Can't open decompressor: " + err.Error(), name, []string{"New"}, true}
	}
	S.h = bufio.NewReader(S.z)
	S.filename = name
	header, err := S.h.ReadString('\n')
	if err != nil {
		return nil, Error{"Can't read header: " + err.Error(), name, []string{"New"}, true}
	}
	if _, err := fmt.Sscanf(header, "** %d", &S.natoms); err != nil {
		return nil, Error{"Ill-formatted header: " + header, name, []string{"New"}, true}
	}
	S.readable = true
	return S, nil
}

func (S *StfR) Len() int {
	return S.natoms
}

func (S *StfR) Readable() bool {
	return S.readable
}

// Next reads the next frame into output, which must have one vector per
// atom. A nil output discards the frame. After the last frame, Next
// returns a LastFrameError and the reader stops being readable.
func (S *StfR) Next(output *v3.Matrix) error {
	if !S.readable {
		return Error{"Attempted to read from a closed trajectory", S.filename, []string{"Next"}, true}
	}
	if output != nil && output.NVecs() != S.natoms {
		return Error{fmt.Sprintf("Output matrix has %d vectors, but %d needed", output.NVecs(), S.natoms), S.filename, []string{"Next"}, true}
	}
	for i := 0; ; i++ {
		line, err := S.h.ReadString('\n')
		if err == io.EOF && i == 0 && strings.TrimSpace(line) == "" {
			S.readable = false
			return newLastFrameError(S.filename, "Next")
		}
		if err != nil {
			return Error{"Truncated frame: " + err.Error(), S.filename, []string{"Next"}, true}
		}
		if strings.HasPrefix(line, "*") {
			if i != S.natoms {
				return Error{fmt.Sprintf("Frame with %d coordinates, but %d expected", i, S.natoms), S.filename, []string{"Next"}, true}
			}
			return nil
		}
		if i >= S.natoms {
			return Error{fmt.Sprintf("Frame with more than the %d expected coordinates", S.natoms), S.filename, []string{"Next"}, true}
		}
		if output == nil {
			continue
		}
		var x, y, z float64
		if _, err := fmt.Sscanf(line, "%f %f %f", &x, &y, &z); err != nil {
			return Error{"Ill-formatted coordinate line: " + line, S.filename, []string{"Next"}, true}
		}
		output.Set(i, 0, x)
		output.Set(i, 1, y)
		output.Set(i, 2, z)
	}
}

// Close closes the reader. The object can not be used after this call.
func (S *StfR) Close() {
	if S == nil {
		return
	}
	if S.z != nil {
		S.z.Close()
	}
	if S.f != nil {
		S.f.Close()
	}
	S.readable = false
}
