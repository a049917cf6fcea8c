package codec

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/keepsake-app/keepsake/internal/log"
)

// Source is one input file in an upload batch.
type Source struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileSource reads from a path on disk.
func FileSource(path string) Source {
	return Source{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// BytesSource reads from an in-memory buffer.
func BytesSource(name string, data []byte) Source {
	return Source{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

// Failure records a batch item that could not be compressed.
type Failure struct {
	Name string
	Err  error
}

// BatchResult holds the successful payloads in input order and the failures.
type BatchResult struct {
	Payloads []Payload
	Failed   []Failure
}

// CompressBatch compresses each source in order, awaiting one before starting
// the next. A failing item is logged and skipped; it never aborts its
// siblings. If ctx ends, the remaining items are reported as failed.
func (c *Codec) CompressBatch(ctx context.Context, srcs []Source, logger *log.Logger) BatchResult {
	var res BatchResult
	for i, src := range srcs {
		if err := ctx.Err(); err != nil {
			for _, rest := range srcs[i:] {
				res.Failed = append(res.Failed, Failure{Name: rest.Name, Err: err})
			}
			break
		}

		p, err := c.compressSource(ctx, src)
		if err != nil {
			res.Failed = append(res.Failed, Failure{Name: src.Name, Err: err})
			_ = logger.Append(log.LogEvent{
				Event: log.EventImageDecodeFailed,
				Name:  src.Name,
				Index: log.IntPtr(i),
				Error: err.Error(),
			})
			continue
		}
		res.Payloads = append(res.Payloads, p)
	}
	return res
}

func (c *Codec) compressSource(ctx context.Context, src Source) (Payload, error) {
	rc, err := src.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return c.Compress(ctx, rc)
}
