package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/bombrisk/pkg/domain"
	"github.com/aretw0/bombrisk/pkg/ports"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository of treatment documents to ports.TreatmentLoader.
type Loader struct {
	Repo *loam.TypedRepository[TreatmentMetadata]
}

var _ ports.TreatmentLoader = (*Loader)(nil)

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[TreatmentMetadata]) *Loader {
	return &Loader{Repo: repo}
}

// Open initializes a read-only Loam repository at path and wraps it.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[TreatmentMetadata](repo)), nil
}

// Get returns the treatment whose name (or file name) matches.
func (l *Loader) Get(ctx context.Context, name string) (*ports.Treatment, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}
	for _, doc := range docs {
		if treatmentName(doc.ID, doc.Data) == name {
			return toTreatment(name, doc.Data, doc.Content), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrTreatmentNotFound, name)
}

// List returns the treatment names, sorted. Two documents claiming the same
// name are an error.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		name := treatmentName(doc.ID, doc.Data)
		if existing, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: treatment '%s' is defined in both '%s' and '%s'", name, existing, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func treatmentName(docID string, meta TreatmentMetadata) string {
	if meta.Name != "" {
		return meta.Name
	}
	return trimExtension(docID)
}

func toTreatment(name string, meta TreatmentMetadata, content string) *ports.Treatment {
	opts := make(map[string]any, len(meta.Options)+1)
	for k, v := range meta.Options {
		opts[k] = v
	}
	if body := strings.TrimSpace(content); body != "" {
		if _, set := opts["mainText"]; !set {
			opts["mainText"] = body
		}
	}
	return &ports.Treatment{
		Name:        name,
		Description: meta.Description,
		Options:     opts,
	}
}

func trimExtension(id string) string {
	return filepath.ToSlash(strings.TrimSuffix(id, filepath.Ext(id)))
}
