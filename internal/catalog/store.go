package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/boltdb/bolt"
)

var (
	bucketName  = []byte("catalog")
	productsKey = []byte("products")
)

// Store persists the catalog as a single JSON document in bolt.
// Writes replace the document wholesale; the last writer wins, which
// matches the admin editor's save semantics.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database at path and ensures the catalog
// bucket exists.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create catalog bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Products returns the stored catalog. An empty store yields an empty
// slice, never nil, so handlers always serialize a JSON array.
func (s *Store) Products() ([]Product, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketName).Get(productsKey); v != nil {
			raw = append(raw, v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if raw == nil {
		return []Product{}, nil
	}
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return products, nil
}

// Replace overwrites the whole catalog.
func (s *Store) Replace(products []Product) error {
	if products == nil {
		products = []Product{}
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(productsKey, raw)
	})
	if err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// SeedIfEmpty loads the JSON array at path into an empty store. A store
// that already holds a catalog is left untouched.
func (s *Store) SeedIfEmpty(path string) error {
	if path == "" {
		return nil
	}
	var empty bool
	err := s.db.View(func(tx *bolt.Tx) error {
		empty = tx.Bucket(bucketName).Get(productsKey) == nil
		return nil
	})
	if err != nil {
		return fmt.Errorf("check catalog: %w", err)
	}
	if !empty {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog seed: %w", err)
	}
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return fmt.Errorf("decode catalog seed: %w", err)
	}
	return s.Replace(products)
}
