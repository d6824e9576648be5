package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-catgen/pkg/render"
)

// Export runs Generate and writes every artifact under dir, creating
// directories as needed. Artifact paths must stay inside dir.
func (o *Orchestrator) Export(ctx context.Context, req Request, dir string) error {
	if dir == "" {
		return errors.New("orchestrator: output directory is required")
	}

	artifacts, err := o.Generate(ctx, req)
	if err != nil {
		return err
	}

	for _, artifact := range artifacts {
		target, err := artifactTarget(dir, artifact)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("orchestrator: create output directory: %w", err)
		}
		if err := os.WriteFile(target, artifact.Data, 0o644); err != nil {
			return fmt.Errorf("orchestrator: write %s: %w", artifact.Path, err)
		}
	}
	return nil
}

func artifactTarget(dir string, artifact render.Artifact) (string, error) {
	if artifact.Path == "" {
		return "", errors.New("orchestrator: artifact with empty path")
	}
	cleaned := filepath.Clean(filepath.FromSlash(artifact.Path))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("orchestrator: artifact path %q escapes output directory", artifact.Path)
	}
	return filepath.Join(dir, cleaned), nil
}
