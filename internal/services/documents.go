package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"assetcore/internal/apperr"
)

// MaxPARSize caps PAR uploads at 10 MB.
const MaxPARSize = 10 << 20

const (
	EquipmentPARDir = "equipment_pars"
	FurniturePARDir = "furniture_pars"
)

// Documents is the blob store for PAR PDFs: a plain directory tree with one
// subdirectory per asset kind. Filenames are time-qualified, so writes never
// collide and no locking is needed.
type Documents struct {
	root string
}

func NewDocuments(root string) *Documents { return &Documents{root: root} }

// SavePAR validates and stores one uploaded PDF, returning the stored path.
// The size check runs before any byte is written, so a rejected upload
// leaves no file behind.
func (d *Documents) SavePAR(kind, propertyNumber, filename string, size int64, r io.Reader) (string, error) {
	if !strings.HasSuffix(filename, ".pdf") {
		return "", apperr.New(apperr.BadRequest, "Only PDF files are allowed")
	}
	if size > MaxPARSize {
		return "", apperr.New(apperr.PayloadTooLarge, "File too large. Maximum size is 10MB")
	}

	dir := filepath.Join(d.root, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperr.Wrap(apperr.Internal, "Could not create upload directory", err)
	}

	name := fmt.Sprintf("%s_%s.pdf", propertyNumber, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "Could not store file", err)
	}
	defer f.Close()

	// Declared size can lie; enforce the cap on the actual stream too.
	written, err := io.Copy(f, io.LimitReader(r, MaxPARSize+1))
	if err != nil {
		os.Remove(path)
		return "", apperr.Wrap(apperr.Internal, "Could not store file", err)
	}
	if written > MaxPARSize {
		os.Remove(path)
		return "", apperr.New(apperr.PayloadTooLarge, "File too large. Maximum size is 10MB")
	}
	return path, nil
}

// Exists reports whether a recorded PAR path still resolves to a regular
// file in the blob store.
func (d *Documents) Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
