// Package jsonfile implements the record store as one JSON array file per
// entity under a data directory. Each collection is guarded by its own
// mutex; writes go through a temp file and rename so a crash never leaves
// a half-written document behind.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/offerdesk/offerdesk/internal/core/domain"
)

type Store struct {
	Customers *CustomerRepository
	Offers    *OfferRepository
	Comments  *CommentRepository
	Files     *FileRepository
}

func New(dir string) (*Store, error) {
	if dir == "" {
		dir = "./data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{
		Customers: &CustomerRepository{col: collection[domain.Customer]{path: filepath.Join(dir, "customers.json")}},
		Offers:    &OfferRepository{col: collection[domain.Offer]{path: filepath.Join(dir, "offers.json")}},
		Comments:  &CommentRepository{col: collection[domain.Comment]{path: filepath.Join(dir, "comments.json")}},
		Files:     &FileRepository{col: collection[domain.TaggedFile]{path: filepath.Join(dir, "textdata.json")}},
	}, nil
}

// collection serializes access to one entity file. The caller must hold mu
// around load/save pairs.
type collection[T any] struct {
	path string
	mu   sync.Mutex
}

func (c *collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, domain.WrapError(domain.ErrStorage, "read "+filepath.Base(c.path), err)
	}

	items := []T{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, domain.WrapError(domain.ErrStorage, "parse "+filepath.Base(c.path), err)
	}
	return items, nil
}

func (c *collection[T]) save(items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return domain.WrapError(domain.ErrStorage, "marshal "+filepath.Base(c.path), err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return domain.WrapError(domain.ErrStorage, "write "+filepath.Base(c.path), err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return domain.WrapError(domain.ErrStorage, "rename "+filepath.Base(c.path), err)
	}
	return nil
}

// nextSequentialID returns max numeric id + 1, or "1" for an empty set.
func nextSequentialID(ids []string) string {
	max := int64(0)
	for _, id := range ids {
		n, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return strconv.FormatInt(max+1, 10)
}
