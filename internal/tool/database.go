package tool

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const toolsBucket = "tools"

// DB defines the interface for tool persistence
type DB interface {
	// SaveTool writes a tool record, replacing any existing record
	SaveTool(tool *Tool) error

	// GetTool retrieves a tool by ID
	GetTool(id string) (*Tool, error)

	// ListTools returns all tool records
	ListTools() ([]*Tool, error)

	// DeleteTool removes a tool record
	DeleteTool(id string) error

	// Close closes the database connection
	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB creates a new BoltDB instance
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(toolsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// SaveTool writes a tool record, replacing any existing record
func (b *BoltDB) SaveTool(tool *Tool) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(toolsBucket))
		data, err := json.Marshal(tool)
		if err != nil {
			return fmt.Errorf("marshaling tool: %w", err)
		}
		return bucket.Put([]byte(tool.ID), data)
	})
}

// GetTool retrieves a tool by ID
func (b *BoltDB) GetTool(id string) (*Tool, error) {
	var tool *Tool
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(toolsBucket))
		data := bucket.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("tool not found: %s", id)
		}
		return json.Unmarshal(data, &tool)
	})
	if err != nil {
		return nil, err
	}
	return tool, nil
}

// ListTools returns all tool records
func (b *BoltDB) ListTools() ([]*Tool, error) {
	tools := make([]*Tool, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(toolsBucket))
		return bucket.ForEach(func(k, v []byte) error {
			var tool Tool
			if err := json.Unmarshal(v, &tool); err != nil {
				return fmt.Errorf("unmarshaling tool: %w", err)
			}
			tools = append(tools, &tool)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return tools, nil
}

// DeleteTool removes a tool record
func (b *BoltDB) DeleteTool(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(toolsBucket))
		return bucket.Delete([]byte(id))
	})
}

// Close closes the database connection
func (b *BoltDB) Close() error {
	return b.db.Close()
}
