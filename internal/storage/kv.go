package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// KV is the minimal key-value string store the JSON store persists
// through. It mirrors the web storage contract the original tool was
// built against: get/set/remove of opaque strings.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// FileKV backs the KV contract with a single JSON file mapping keys to
// string values. Every Set/Remove rewrites the file so a crash after a
// mutation never loses more than that one mutation.
type FileKV struct {
	path   string
	values map[string]string
}

func NewFileKV(path string) (*FileKV, error) {
	kv := &FileKV{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return kv, nil
		}
		return nil, fmt.Errorf("failed to read store: %w", err)
	}
	if len(data) == 0 {
		return kv, nil
	}
	if err := json.Unmarshal(data, &kv.values); err != nil {
		return nil, fmt.Errorf("failed to parse store: %w", err)
	}
	return kv, nil
}

func (kv *FileKV) Get(key string) (string, bool) {
	v, ok := kv.values[key]
	return v, ok
}

func (kv *FileKV) Set(key, value string) error {
	kv.values[key] = value
	return kv.flush()
}

func (kv *FileKV) Remove(key string) error {
	if _, ok := kv.values[key]; !ok {
		return nil
	}
	delete(kv.values, key)
	return kv.flush()
}

func (kv *FileKV) flush() error {
	dir := filepath.Dir(kv.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	data, err := json.MarshalIndent(kv.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize store: %w", err)
	}
	if err := os.WriteFile(kv.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	return nil
}

// MemKV is an in-memory KV used by tests.
type MemKV struct {
	values map[string]string
}

func NewMemKV() *MemKV {
	return &MemKV{values: make(map[string]string)}
}

func (kv *MemKV) Get(key string) (string, bool) {
	v, ok := kv.values[key]
	return v, ok
}

func (kv *MemKV) Set(key, value string) error {
	kv.values[key] = value
	return nil
}

func (kv *MemKV) Remove(key string) error {
	delete(kv.values, key)
	return nil
}
