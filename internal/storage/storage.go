// Package storage keeps uploaded print files on local disk or in S3.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("only PDF files can be printed")
	ErrNotFound        = errors.New("stored file not found")
)

type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

func safeExt(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" {
		return "", ErrUnsupportedType
	}
	return ext, nil
}
