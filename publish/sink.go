package publish

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink stores named report payloads.
//
// Put may be called concurrently with distinct names.
type Sink interface {
	Put(name string, payload []byte) error
}

// DirSink writes every payload as a file in Dir.
type DirSink struct {
	Dir string
}

// Put writes payload into Dir/name, creating Dir when needed.
func (s DirSink) Put(name string, payload []byte) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return os.WriteFile(filepath.Join(s.Dir, name), payload, 0644)
}
