package printjob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageCounter detects how many pages an uploaded document has.
type PageCounter interface {
	CountPages(ctx context.Context, ref string) (int, error)
}

// CounterFunc adapts a function to PageCounter.
type CounterFunc func(ctx context.Context, ref string) (int, error)

func (f CounterFunc) CountPages(ctx context.Context, ref string) (int, error) {
	return f(ctx, ref)
}

// Opener reads back a stored upload.
type Opener interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// PDFCounter counts the pages of a stored PDF.
type PDFCounter struct {
	Files Opener
}

func (p PDFCounter) CountPages(ctx context.Context, ref string) (int, error) {
	rc, err := p.Files.Open(ctx, ref)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", ref, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", ref, err)
	}
	n, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("count pages of %s: %w", ref, err)
	}
	return n, nil
}

// Delayed holds every count back by Delay, standing in for slow document processing.
type Delayed struct {
	Counter PageCounter
	Delay   time.Duration
}

func (d Delayed) CountPages(ctx context.Context, ref string) (int, error) {
	if d.Delay > 0 {
		t := time.NewTimer(d.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-t.C:
		}
	}
	return d.Counter.CountPages(ctx, ref)
}
