package file_test

import (
	"bytes"
	"context"
	"crypto/md5"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/utilkit/pkg/file"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func createFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := &http.Request{
		Method: http.MethodPost,
		Header: http.Header{"Content-Type": []string{w.FormDataContentType()}},
		Body:   io.NopCloser(body),
	}
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func TestUploadHelpers(t *testing.T) {
	t.Parallel()

	png := createFileHeader(t, "photo.png", pngHeader)
	txt := createFileHeader(t, "notes.txt", []byte("plain text"))
	disguised := createFileHeader(t, "evil.jpg", []byte("#!/bin/sh\necho hi"))

	t.Run("media detection", func(t *testing.T) {
		t.Parallel()
		assert.True(t, file.IsImage(png))
		assert.False(t, file.IsImage(txt))
		assert.False(t, file.IsImage(nil))
		assert.False(t, file.IsVideo(png))
		assert.False(t, file.IsAudio(png))
	})

	t.Run("extension falls back only for undetectable content", func(t *testing.T) {
		t.Parallel()
		assert.False(t, file.IsImage(disguised))
		heic := createFileHeader(t, "photo.heic", []byte{0x00, 0x01, 0x02, 0x03})
		assert.True(t, file.IsImage(heic))
		binary := createFileHeader(t, "data.bin", []byte{0x00, 0x01, 0x02, 0x03})
		assert.False(t, file.IsImage(binary))
	})

	t.Run("mime type", func(t *testing.T) {
		t.Parallel()
		mt, err := file.GetMIMEType(png)
		require.NoError(t, err)
		assert.Equal(t, "image/png", mt)

		_, err = file.GetMIMEType(nil)
		assert.ErrorIs(t, err, file.ErrNilFileHeader)
		assert.Equal(t, ".png", file.GetExtension(png))
	})

	t.Run("validate size", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, file.ValidateSize(txt, 100))
		assert.ErrorIs(t, file.ValidateSize(txt, 3), file.ErrFileTooLarge)
	})

	t.Run("validate mime type", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, file.ValidateMIMEType(png, "image/png"))
		assert.NoError(t, file.ValidateMIMEType(txt))
		assert.ErrorIs(t, file.ValidateMIMEType(txt, "image/png"), file.ErrMIMETypeNotAllowed)
	})

	t.Run("hash", func(t *testing.T) {
		t.Parallel()
		sum, err := file.Hash(txt, nil)
		require.NoError(t, err)
		assert.Len(t, sum, 64)

		sum, err = file.Hash(txt, md5.New())
		require.NoError(t, err)
		assert.Len(t, sum, 32)
	})
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"../../../etc/passwd":    "passwd",
		`C:\Windows\system.ini`: "system.ini",
		"file\x00.txt":           "file.txt",
		"..":                     "unnamed",
		"":                       "unnamed",
		"report.pdf":             "report.pdf",
	}
	for in, want := range tests {
		assert.Equal(t, want, file.SanitizeFilename(in), in)
	}
}

func TestPutHelpers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, err := file.NewLocalStorage(t.TempDir(), "/files")
	require.NoError(t, err)

	f, err := file.PutString(ctx, s, "a/b.txt", "hello")
	require.NoError(t, err)
	assert.Equal(t, "a/b.txt", f.RelativePath)
	assert.Equal(t, int64(5), f.Size)
	assert.True(t, strings.HasPrefix(f.MIMEType, "text/plain"))

	u, err := file.PutUnique(ctx, s, "uploads", "png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "uploads", path.Dir(u.RelativePath))
	assert.Equal(t, ".png", path.Ext(u.RelativePath))
	assert.Len(t, strings.TrimSuffix(path.Base(u.RelativePath), ".png"), 36)
	assert.Equal(t, "image/png", u.MIMEType)
}
