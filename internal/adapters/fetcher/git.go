// Package fetcher implements the retrieval strategies selected by a library's source type.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	platformerrors "github.com/jmgilman/go/errors"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fetcher = (*Git)(nil)

var commitPattern = regexp.MustCompile("^[0-9a-f]{7,40}$")

// Git clones the requested ref of a repository.
// The version is tried as a branch, then as a tag, then as a commit.
type Git struct {
	url  string
	auth transport.AuthMethod
}

// GitOption configures a Git fetcher.
type GitOption func(*Git)

// WithAuth sets the credentials used for the remote.
func WithAuth(auth transport.AuthMethod) GitOption {
	return func(g *Git) {
		g.auth = auth
	}
}

// NewGit creates a Git fetcher for the repository at url.
func NewGit(url string, opts ...GitOption) *Git {
	g := &Git{url: url}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Fetch clones version into targetDir. The history is kept only when includeChangelog is set;
// otherwise the clone is shallow and .git is removed afterwards.
func (g *Git) Fetch(ctx context.Context, name, version string, includeChangelog bool, targetDir string) error {
	refs := []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(version),
		plumbing.NewTagReferenceName(version),
	}

	var err error
	for _, ref := range refs {
		err = g.cloneRef(ctx, ref, includeChangelog, targetDir)
		if !isMissingRef(err) {
			break
		}
	}
	if isMissingRef(err) && commitPattern.MatchString(version) {
		err = g.cloneCommit(ctx, version, targetDir)
	}
	if err != nil {
		_ = os.RemoveAll(targetDir)
		return fetchErr(classify(ctx, err), name, version)
	}

	if !includeChangelog {
		if err := os.RemoveAll(filepath.Join(targetDir, gogit.GitDirName)); err != nil {
			return fetchErr(platformerrors.Wrap(err, platformerrors.CodeInternal, "failed to remove history"), name, version)
		}
	}
	return nil
}

func (g *Git) cloneRef(ctx context.Context, ref plumbing.ReferenceName, includeChangelog bool, targetDir string) error {
	if err := os.RemoveAll(targetDir); err != nil {
		return err
	}

	opts := &gogit.CloneOptions{
		URL:           g.url,
		Auth:          g.auth,
		ReferenceName: ref,
		SingleBranch:  true,
	}
	if !includeChangelog {
		opts.Depth = 1
	}

	_, err := gogit.PlainCloneContext(ctx, targetDir, false, opts)
	return err
}

func (g *Git) cloneCommit(ctx context.Context, commit, targetDir string) error {
	if err := os.RemoveAll(targetDir); err != nil {
		return err
	}

	repo, err := gogit.PlainCloneContext(ctx, targetDir, false, &gogit.CloneOptions{
		URL:        g.url,
		Auth:       g.auth,
		NoCheckout: true,
	})
	if err != nil {
		return err
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(commit))
	if err != nil {
		return err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return err
	}
	return wt.Checkout(&gogit.CheckoutOptions{Hash: *hash, Force: true})
}

func isMissingRef(err error) bool {
	return errors.Is(err, gogit.NoMatchingRefSpecError{}) ||
		errors.Is(err, plumbing.ErrReferenceNotFound)
}

// classify maps clone failures onto platform error codes so transient failures can be retried.
func classify(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil:
		return platformerrors.Wrap(err, platformerrors.CodeTimeout, "clone interrupted")
	case isMissingRef(err):
		return platformerrors.Wrap(err, platformerrors.CodeNotFound, "version not found")
	case errors.Is(err, transport.ErrRepositoryNotFound), errors.Is(err, transport.ErrEmptyRemoteRepository):
		return platformerrors.Wrap(err, platformerrors.CodeNotFound, "repository not found")
	case errors.Is(err, transport.ErrAuthenticationRequired), errors.Is(err, transport.ErrAuthorizationFailed):
		return platformerrors.Wrap(err, platformerrors.CodeUnauthorized, "access denied")
	case errors.Is(err, gogit.ErrMissingURL), errors.Is(err, transport.ErrInvalidAuthMethod):
		return platformerrors.Wrap(err, platformerrors.CodeInvalidInput, "invalid remote")
	default:
		return platformerrors.Wrap(err, platformerrors.CodeNetwork, "clone failed")
	}
}

func fetchErr(err error, name, version string) error {
	return zerr.With(zerr.With(fmt.Errorf("%w: %w", domain.ErrFetchFailed, err), "library", name), "version", version)
}
