package git

import (
	"context"
	"fmt"
	"io"

	"github.com/speakeasy-api/recentfile/internal/recent"
)

var _ recent.Provider = (*Repository)(nil)

// GetRepoContent reads path at ref. owner and repo are ignored: a local clone holds one repository and its forks as remotes.
func (r *Repository) GetRepoContent(ctx context.Context, _, _, path, ref string) (*recent.Snapshot, error) {
	if r.IsNil() {
		return nil, errNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	hash, err := r.resolve(ref)
	if err != nil {
		return nil, err
	}

	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("git: failed to read commit %s: %w", hash, err)
	}

	file, err := commit.File(path)
	if err != nil {
		return nil, fmt.Errorf("git: %s at %s: %w", path, ref, err)
	}

	reader, err := file.Reader()
	if err != nil {
		return nil, fmt.Errorf("git: failed to open blob %s: %w", file.Hash, err)
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("git: failed to read blob %s: %w", file.Hash, err)
	}

	return &recent.Snapshot{Hash: file.Hash.String(), Content: content}, nil
}
