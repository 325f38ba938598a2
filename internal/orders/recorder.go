package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/piwi3910/BoardCut/internal/model"
)

// Recorder keeps the list of submitted orders.
type Recorder interface {
	Record(ctx context.Context, order model.Order) error
	List(ctx context.Context) ([]model.Order, error)
}

// FileRecorder stores orders as a JSON array in a single file.
type FileRecorder struct {
	Path string
	mu   sync.Mutex
}

func NewFileRecorder(path string) *FileRecorder {
	return &FileRecorder{Path: path}
}

func (r *FileRecorder) Record(ctx context.Context, order model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return err
	}
	list = append(list, order)

	if err := os.MkdirAll(filepath.Dir(r.Path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal orders: %w", err)
	}
	if err := os.WriteFile(r.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write orders: %w", err)
	}
	return nil
}

func (r *FileRecorder) List(ctx context.Context) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *FileRecorder) load() ([]model.Order, error) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Order{}, nil
		}
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	var list []model.Order
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse orders: %w", err)
	}
	if list == nil {
		list = []model.Order{}
	}
	return list, nil
}

func sortNewestFirst(list []model.Order) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
