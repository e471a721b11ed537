package media

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes images under Root and serves them from BaseURL. The
// public id is the slash separated path relative to Root.
type LocalStore struct {
	Root    string
	BaseURL string
}

func NewLocalStore(root, baseURL string) *LocalStore {
	return &LocalStore{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStore) Upload(_ context.Context, file *multipart.FileHeader) (Image, error) {
	if err := ValidateImage(file); err != nil {
		return Image{}, err
	}

	extension := strings.ToLower(filepath.Ext(file.Filename))
	publicID := path.Join("products", uuid.NewString()+extension)

	dir := filepath.Join(s.Root, "products")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[UPLOAD] failed to create directory %s: %v", dir, err)
		return Image{}, err
	}

	fullPath := filepath.Join(s.Root, filepath.FromSlash(publicID))
	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] failed to create file %s: %v", fullPath, err)
		return Image{}, err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		log.Printf("[UPLOAD] failed to open upload %s: %v", file.Filename, err)
		return Image{}, err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.Printf("[UPLOAD] failed to save file %s: %v", fullPath, err)
		return Image{}, err
	}

	return Image{
		URL:      s.BaseURL + "/uploads/" + publicID,
		PublicID: publicID,
	}, nil
}

func (s *LocalStore) Delete(_ context.Context, publicIDs []string) error {
	var firstErr error
	for _, id := range publicIDs {
		if err := s.remove(id); err != nil {
			log.Printf("[UPLOAD] delete %s failed: %v", id, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// remove deletes one file, refusing anything that resolves outside Root.
func (s *LocalStore) remove(publicID string) error {
	trimmed := strings.TrimSpace(publicID)
	if trimmed == "" {
		return nil
	}

	cleanRel := strings.TrimPrefix(path.Clean("/"+strings.TrimPrefix(trimmed, "/")), "/")
	if !strings.HasPrefix(cleanRel, "products/") {
		return fmt.Errorf("refusing to delete non-product path: %s", publicID)
	}

	cleanBase := filepath.Clean(s.Root)
	cleanTarget := filepath.Clean(filepath.Join(cleanBase, filepath.FromSlash(cleanRel)))
	if !strings.HasPrefix(cleanTarget, cleanBase+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete path outside upload root: %s", publicID)
	}

	if err := os.Remove(cleanTarget); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
