// Package git fetches the bot repository onto the host.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	xssh "golang.org/x/crypto/ssh"
)

// ErrCloneExists is returned when the clone target already holds a
// repository. Provisioning is not idempotent: a pre-existing clone
// fails the run instead of being reused.
var ErrCloneExists = errors.New("clone target already exists")

type GitSource struct {
	repo     string
	path     string
	auth     transport.AuthMethod
	insecure bool
}

func NewGitSource(path, repo string, c *Config) (*GitSource, error) {
	g := &GitSource{
		repo: repo,
		path: path,
	}
	if c != nil {
		g.insecure = c.Insecure
		if c.PrivateKey != "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			_, err = os.Stat(fmt.Sprintf("%v/.ssh/known_hosts", home))
			if err != nil {
				return nil, err
			}
			_, err = os.Stat(c.PrivateKey)
			if err != nil {
				return nil, err
			}
			publicKeys, err := ssh.NewPublicKeysFromFile("git", c.PrivateKey, "")
			if err != nil {
				return nil, err
			}
			if g.insecure {
				publicKeys.HostKeyCallback = xssh.InsecureIgnoreHostKey()
			}
			g.auth = publicKeys
		} else if c.Username != "" {
			g.auth = &http.BasicAuth{
				Username: c.Username,
				Password: c.Password,
			}
		}
	}
	return g, nil
}

// Fetch clones the repository into the configured path. It never pulls:
// an existing repository at the path is an error the operator has to
// resolve by hand.
func (g *GitSource) Fetch(ctx context.Context) error {
	options := git.CloneOptions{
		URL:      g.repo,
		Progress: os.Stdout,
		Auth:     g.auth,
	}
	_, err := git.PlainCloneContext(ctx, g.path, false, &options)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		return fmt.Errorf("%w: %v", ErrCloneExists, g.path)
	}
	if err != nil {
		return err
	}
	return nil
}

func (g *GitSource) Clean() error {
	return os.RemoveAll(g.path)
}
