package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPutOpenDelete(t *testing.T) {
	ctx := context.Background()
	l := NewLocal(t.TempDir(), "/uploads/")

	res, err := l.Put(ctx, strings.NewReader("%PDF-1.4 fake"), PutInput{Filename: "Notes.PDF"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Key, ".pdf"))
	assert.Equal(t, "/uploads/"+res.Key, res.URL)

	rc, err := l.Open(ctx, res.Key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "%PDF-1.4 fake", string(data))

	require.NoError(t, l.Delete(ctx, res.Key))
	_, err = l.Open(ctx, res.Key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalRejectsNonPDF(t *testing.T) {
	l := NewLocal(t.TempDir(), "/uploads")
	_, err := l.Put(context.Background(), strings.NewReader("x"), PutInput{Filename: "photo.png"})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestFromConfig(t *testing.T) {
	res, err := FromConfig(context.Background(), Config{LocalDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "local", res.Driver)

	_, err = FromConfig(context.Background(), Config{Driver: "s3"})
	assert.Error(t, err)

	_, err = FromConfig(context.Background(), Config{Driver: "ftp"})
	assert.Error(t, err)
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestLocalPutRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads")
	r := io.MultiReader(strings.NewReader("%PDF-1.4 half"), brokenReader{})

	_, err := l.Put(context.Background(), r, PutInput{Filename: "notes.pdf"})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
