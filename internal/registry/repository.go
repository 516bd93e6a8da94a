package registry

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/go-containerregistry/pkg/name"
)

const (
	// DefaultNamespace is prefixed to Docker Hub repositories without one.
	DefaultNamespace = "library"
	namespaceSep     = "/"
)

// NormalizeRepo validates a repository identifier and prefixes the default
// namespace when none is present.
func NormalizeRepo(repo string) (string, error) {
	for i := 0; i < len(repo); i++ {
		if repo[i] >= utf8.RuneSelf {
			r, _ := utf8.DecodeRuneInString(repo[i:])
			return "", &InvalidCharacterError{Name: repo, Char: r, Offset: i}
		}
	}
	if !strings.Contains(repo, namespaceSep) {
		return DefaultNamespace + namespaceSep + repo, nil
	}
	return repo, nil
}

// RepositoryFromImage extracts the repository of an image token such as
// "nginx:1.0", "bitnami/redis@sha256:..." or "ghcr.io/org/app:v2". Docker Hub
// repositories come back registry-relative ("library/nginx"); any other
// registry keeps its host ("ghcr.io/org/app").
func RepositoryFromImage(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrNoImage
	}
	ref, err := name.ParseReference(token, name.WeakValidation)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrNoImage, token, err)
	}
	repo := ref.Context()
	if isHubRegistry(repo.RegistryStr()) {
		return repo.RepositoryStr(), nil
	}
	return repo.Name(), nil
}

// RepositoryPart strips any tag or digest from an image token while keeping
// the repository exactly as written.
func RepositoryPart(token string) string {
	token = strings.TrimSpace(token)
	if at := strings.Index(token, "@"); at >= 0 {
		token = token[:at]
	}
	slash := strings.LastIndex(token, "/")
	if colon := strings.LastIndex(token, ":"); colon > slash {
		token = token[:colon]
	}
	return token
}

// DisplayRepo returns the shortest form of a repository suitable for writing
// into an image reference ("library/nginx" becomes "nginx").
func DisplayRepo(repo string) string {
	return strings.TrimPrefix(repo, DefaultNamespace+namespaceSep)
}

// IsHubRepository reports whether repo lives on Docker Hub. Names that do not
// parse are treated as Hub names and left for the Hub endpoint to reject.
func IsHubRepository(repo string) bool {
	ref, err := name.NewRepository(repo, name.WeakValidation)
	if err != nil {
		return true
	}
	return isHubRegistry(ref.RegistryStr())
}

func isHubRegistry(host string) bool {
	return host == name.DefaultRegistry || host == "docker.io"
}

// hubPath returns the registry-relative path of a Hub repository, dropping
// any explicit docker.io host.
func hubPath(repo string) string {
	ref, err := name.NewRepository(repo, name.WeakValidation)
	if err != nil {
		return repo
	}
	return ref.RepositoryStr()
}
