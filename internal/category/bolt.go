package category

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

const bucketName = "categories"

// BoltRegistry implements the Registry interface using BoltDB
type BoltRegistry struct {
	db *bbolt.DB
}

// NewBoltRegistry opens (or creates) the registry database. A fresh registry
// is seeded with the default label set so the form has something to offer
// before the user customizes anything.
func NewBoltRegistry(path string) (*BoltRegistry, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		if err != nil {
			return err
		}
		if bucket.Stats().KeyN > 0 {
			return nil
		}
		for _, c := range Defaults() {
			c.ID = uuid.NewString()
			data, err := json.Marshal(c)
			if err != nil {
				return fmt.Errorf("marshaling category: %w", err)
			}
			if err := bucket.Put([]byte(c.ID), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding categories: %w", err)
	}

	return &BoltRegistry{db: db}, nil
}

// List returns all categories sorted by name
func (b *BoltRegistry) List() ([]Category, error) {
	categories := make([]Category, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		return bucket.ForEach(func(k, v []byte) error {
			var c Category
			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("unmarshaling category: %w", err)
			}
			categories = append(categories, c)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// Add creates a category with a generated id
func (b *BoltRegistry) Add(name, color string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	if color == "" {
		color = DefaultColor
	}

	c := Category{
		ID:    uuid.NewString(),
		Name:  name,
		Color: color,
	}

	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshaling category: %w", err)
		}
		return bucket.Put([]byte(c.ID), data)
	})
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// Remove deletes a category by id
func (b *BoltRegistry) Remove(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketName))
		if bucket.Get([]byte(id)) == nil {
			return fmt.Errorf("category not found: %s", id)
		}
		return bucket.Delete([]byte(id))
	})
}

// Close closes the database
func (b *BoltRegistry) Close() error {
	return b.db.Close()
}
