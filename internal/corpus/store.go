// Package corpus owns the candidate resumes and their precomputed embeddings.
package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	schemafiles "github.com/jonathan/resume-screener/schemas"

	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/types"
)

// Store is a read-only source of candidates in corpus order.
type Store interface {
	Candidates(ctx context.Context) ([]types.Candidate, error)
}

// FileStore reads a corpus JSON file on every call.
type FileStore struct {
	path string
}

// NewFileStore creates a store over the corpus file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the corpus file location.
func (s *FileStore) Path() string {
	return s.path
}

// Candidates loads and schema-checks the corpus file.
// A missing file or an empty candidate list is a DataNotFoundError.
func (s *FileStore) Candidates(ctx context.Context) ([]types.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	corpus, err := ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	if len(corpus.Candidates) == 0 {
		return nil, &DataNotFoundError{Resource: s.path, Message: "corpus has no candidates"}
	}
	return corpus.Candidates, nil
}

// ReadFile parses a corpus file after validating it against the corpus schema.
func ReadFile(path string) (*types.Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &DataNotFoundError{Resource: path, Message: "corpus file does not exist", Cause: err}
		}
		return nil, fmt.Errorf("failed to read corpus file: %w", err)
	}

	if err := schemas.ValidateBytes(schemafiles.Corpus, data); err != nil {
		return nil, fmt.Errorf("invalid corpus file %s: %w", path, err)
	}

	var corpus types.Corpus
	if err := json.Unmarshal(data, &corpus); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file: %w", err)
	}
	return &corpus, nil
}

// WriteFile writes corpus as indented JSON, creating parent directories.
func WriteFile(path string, corpus *types.Corpus) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create corpus directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(corpus, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal corpus: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write corpus file: %w", err)
	}
	return nil
}

// MemoryStore serves a fixed candidate list.
type MemoryStore struct {
	candidates []types.Candidate
}

// NewMemoryStore copies candidates into a new store.
func NewMemoryStore(candidates ...types.Candidate) *MemoryStore {
	return &MemoryStore{candidates: append([]types.Candidate(nil), candidates...)}
}

// Candidates returns a copy of the stored list. An empty store is a DataNotFoundError.
func (s *MemoryStore) Candidates(ctx context.Context) ([]types.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.candidates) == 0 {
		return nil, &DataNotFoundError{Resource: "memory", Message: "corpus has no candidates"}
	}
	return append([]types.Candidate(nil), s.candidates...), nil
}

// RequireEmbeddings fails with a DataNotFoundError naming the candidates that
// have no precomputed embedding.
func RequireEmbeddings(candidates []types.Candidate) error {
	var missing []string
	for i := range candidates {
		if !candidates[i].HasEmbedding() {
			missing = append(missing, candidates[i].ID)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	shown := missing
	if len(shown) > 5 {
		shown = shown[:5]
	}
	msg := fmt.Sprintf("%d of %d candidates have no embedding (%s", len(missing), len(candidates), strings.Join(shown, ", "))
	if len(missing) > len(shown) {
		msg += ", ..."
	}
	return &DataNotFoundError{Resource: "embeddings", Message: msg + "); run encode first"}
}
