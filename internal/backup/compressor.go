package backup

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

const (
	MethodDeflate = "deflate"
	MethodZstd    = "zstd"
)

// archiveMethod returns the zip method id and compressor for a configured method name.
func archiveMethod(name string, level int) (uint16, zip.Compressor, error) {
	switch name {
	case "", MethodDeflate:
		return zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
			return flate.NewWriter(w, level)
		}, nil
	case MethodZstd:
		var opts []zstd.EOption
		if level > 0 {
			opts = append(opts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		}
		return zstd.ZipMethodWinZip, zstd.ZipCompressor(opts...), nil
	default:
		return 0, nil, fmt.Errorf("unknown archive method %q", name)
	}
}

func newArchiveWriter(w io.Writer, method uint16, comp zip.Compressor) *zip.Writer {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(method, comp)
	return zw
}

// OpenArchive opens a backup archive for reading. zstd members are readable too.
func OpenArchive(path string) (*zip.ReadCloser, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	rc.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
	return rc, nil
}

// ReadMembers returns the content of every member keyed by member name.
func ReadMembers(path string) (map[string][]byte, error) {
	rc, err := OpenArchive(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	members := make(map[string][]byte, len(rc.File))
	for _, f := range rc.File {
		r, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open member %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			return nil, fmt.Errorf("read member %s: %w", f.Name, err)
		}
		members[f.Name] = data
	}
	return members, nil
}
