// Package uploads stores menu images on local disk and maps them to the
// public /uploads path namespace.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// URLPrefix is where stored files are served from.
const URLPrefix = "/uploads"

// imageTypes are the accepted upload formats and the extension each is
// stored under. SVG is excluded because it can carry script.
var imageTypes = []struct {
	mime, ext string
}{
	{"image/png", ".png"},
	{"image/jpeg", ".jpg"},
	{"image/gif", ".gif"},
	{"image/webp", ".webp"},
}

var (
	ErrTooLarge = errors.New("upload exceeds size limit")
	ErrNotImage = errors.New("upload is not an image")
)

type Disk struct {
	dir      string
	maxBytes int64
}

// NewDisk creates dir if needed.
func NewDisk(dir string, maxBytes int64) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Disk{dir: dir, maxBytes: maxBytes}, nil
}

func (d *Disk) Dir() string { return d.dir }

// Save writes the uploaded image under a time-ordered UUID name and returns
// its public path, e.g. /uploads/0190c8a2-....png.
func (d *Disk) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > d.maxBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, fh.Size, d.maxBytes)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("detect upload type: %w", err)
	}
	ext, ok := imageExtension(mtype)
	if !ok {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mtype.String())
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate upload name: %w", err)
	}
	// The client's file name is ignored; the served Content-Type follows ext.
	name := id.String() + ext

	dst, err := os.OpenFile(filepath.Join(d.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("close upload file: %w", err)
	}
	return path.Join(URLPrefix, name), nil
}

func imageExtension(mtype *mimetype.MIME) (string, bool) {
	for _, t := range imageTypes {
		if mtype.Is(t.mime) {
			return t.ext, true
		}
	}
	return "", false
}

// Remove deletes the file behind a public path returned by Save. Paths
// outside the upload namespace and already-missing files are ignored.
func (d *Disk) Remove(ref string) error {
	name, ok := strings.CutPrefix(ref, URLPrefix+"/")
	if !ok || name == "" || name != filepath.Base(name) {
		return nil
	}
	err := os.Remove(filepath.Join(d.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}
