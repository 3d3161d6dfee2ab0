package canvas

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Open opens a canvas-history log for buffered sequential reading.
// Files with a .gz suffix are decompressed transparently, since the
// published datasets ship gzipped.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipLog{file: f, gz: gz}, nil
}

type gzipLog struct {
	file *os.File
	gz   *gzip.Reader
}

func (g *gzipLog) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipLog) Close() error {
	gzErr := g.gz.Close()
	if err := g.file.Close(); err != nil {
		return err
	}
	return gzErr
}

// EachLine streams the log at path line by line. The CSV header is
// always skipped; line numbers start at 1 for the first line after it.
// The log is read once, sequentially, so multi-gigabyte histories
// never need to fit in memory.
func EachLine(path string, fn func(lineNo int, line string)) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	r := bufio.NewReaderSize(rc, 1<<20)
	if _, err := r.ReadString('\n'); err != nil {
		return fmt.Errorf("could not skip CSV header: %w", err)
	}

	lineNo := 0
	for {
		line, err := r.ReadString('\n')
		if trimmed := strings.TrimRight(line, "\r\n"); trimmed != "" {
			lineNo++
			fn(lineNo, trimmed)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
