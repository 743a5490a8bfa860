package storage

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)

	return form.File["file"][0]
}

func TestLocalStore_Save(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	relPath, err := store.Save(fileHeader(t, "receipt.JPG", []byte("jpeg-bytes")), "receipts")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relPath, "receipts/"))
	assert.True(t, strings.HasSuffix(relPath, ".jpg"))

	saved, err := os.ReadFile(store.Abs(relPath))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), saved)
}

func TestWriteFile_RemovesPartialFileOnError(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "receipt.jpg")
	src := io.MultiReader(
		strings.NewReader("partial"),
		iotest.ErrReader(errors.New("read failed")),
	)

	err := writeFile(dest, src)
	require.Error(t, err)

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}
