package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"travel_agency/internal/domain"
)

const MaxUploadBytes = 10 << 20

var allowedExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

// Disk stores uploads under Root/<folder>/<uuid><ext>. The stored name never
// derives from the client's filename beyond its extension.
type Disk struct {
	Root string
}

func NewDisk(root string) *Disk { return &Disk{Root: root} }

func (d *Disk) Save(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		return "", domain.NewValidationError("file", "must be a jpg, png, webp or gif image")
	}
	if folder == "" || strings.ContainsAny(folder, `/\.`) {
		return "", fmt.Errorf("media: bad folder %q", folder)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(d.Root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("media: mkdir: %w", err)
	}
	name := uuid.NewString() + ext
	full := filepath.Join(dir, name)
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("media: create: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, MaxUploadBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxUploadBytes {
		err = domain.NewValidationError("file", "must be at most 10 MB")
	}
	if err != nil {
		_ = os.Remove(full)
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return "", ve
		}
		return "", fmt.Errorf("media: write: %w", err)
	}
	return path.Join(folder, name), nil
}
