// Package storage menyimpan berkas unggahan (bukti izin, surat sakit, slip gaji) ke disk publik lokal atau S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"sdm-yayasan-backend/config"
	"sdm-yayasan-backend/internal/pkg/apperror"
)

type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New memilih driver sesuai STORAGE_DRIVER.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3Storage(ctx, cfg)
	case "local", "":
		return NewLocalStorage(cfg.LocalDir, cfg.PublicURL)
	default:
		return nil, fmt.Errorf("storage driver %q tidak didukung", cfg.Driver)
	}
}

const MaxUploadSize = 5 * 1024 * 1024 // 5 MB

var (
	DokumenTypes = map[string]string{
		".pdf":  "application/pdf",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
	}
	PDFTypes = map[string]string{".pdf": "application/pdf"}
)

// SaveUpload memvalidasi lalu menyimpan berkas multipart ke folder, mengembalikan key objek.
func SaveUpload(ctx context.Context, s Storage, folder string, fh *multipart.FileHeader, allowed map[string]string) (string, error) {
	if fh.Size > MaxUploadSize {
		return "", apperror.Field("file", "ukuran file maksimal 5 MB")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	contentType, ok := allowed[ext]
	if !ok {
		return "", apperror.Field("file", "tipe file tidak diizinkan")
	}

	f, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer f.Close()

	key := NewKey(folder, ext)
	if err := s.Put(ctx, key, f, contentType); err != nil {
		return "", err
	}
	return key, nil
}

// NewKey membuat nama objek acak di dalam folder.
func NewKey(folder, ext string) string {
	return path.Join(folder, uuid.NewString()+ext)
}

func cleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", errors.New("key kosong")
	}
	return cleaned, nil
}
