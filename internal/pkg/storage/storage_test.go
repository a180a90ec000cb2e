package storage

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sdm-yayasan-backend/internal/pkg/apperror"
)

func newFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestLocalStorageRoundTrip(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(root, "/storage/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "absensi/surat.pdf", strings.NewReader("isi"), "application/pdf"))

	rc, err := s.Open(ctx, "absensi/surat.pdf")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "isi", string(data))
	assert.Equal(t, "/storage/absensi/surat.pdf", s.URL("absensi/surat.pdf"))

	require.NoError(t, s.Delete(ctx, "absensi/surat.pdf"))
	_, err = os.Stat(filepath.Join(root, "absensi", "surat.pdf"))
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, s.Delete(ctx, "absensi/surat.pdf"), "deleting a missing file is not an error")
}

func TestLocalStorageStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	s, err := NewLocalStorage(filepath.Join(root, "public"), "/storage")
	require.NoError(t, err)

	require.NoError(t, s.Put(context.Background(), "../../luar.txt", strings.NewReader("x"), "text/plain"))
	_, err = os.Stat(filepath.Join(root, "public", "luar.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "luar.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveUpload(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "/storage")
	require.NoError(t, err)
	ctx := context.Background()

	key, err := SaveUpload(ctx, s, "cuti", newFileHeader(t, "Surat Dokter.PDF", []byte("%PDF-1.4")), DokumenTypes)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "cuti/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	_, err = SaveUpload(ctx, s, "cuti", newFileHeader(t, "virus.exe", []byte("MZ")), DokumenTypes)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "file")
}
