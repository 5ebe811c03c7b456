package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// cartFileName is the fixed key the cart persists under, one cart per
// storage directory.
const cartFileName = "cart.json"

// Storage persists cart lines between sessions.
type Storage interface {
	Load() ([]LineItem, error)
	Save(items []LineItem) error
	Clear() error
}

// FileStorage keeps the cart as a JSON file in a directory.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

func (fs *FileStorage) path() string {
	return filepath.Join(fs.dir, cartFileName)
}

// Load returns the persisted lines. A missing file is an empty cart, not
// an error; a corrupt file is an error for the caller to decide on.
func (fs *FileStorage) Load() ([]LineItem, error) {
	data, err := os.ReadFile(fs.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart file: %w", err)
	}

	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("cart file is corrupt: %w", err)
	}
	return items, nil
}

func (fs *FileStorage) Save(items []LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cart directory: %w", err)
	}
	if err := os.WriteFile(fs.path(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart file: %w", err)
	}
	return nil
}

// Clear removes the stored entry entirely rather than writing an empty
// list.
func (fs *FileStorage) Clear() error {
	if err := os.Remove(fs.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cart file: %w", err)
	}
	return nil
}
