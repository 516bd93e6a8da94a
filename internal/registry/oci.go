package registry

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
)

const defaultOCIPageSize = 50

// OCISource lists tags through the distribution API of any OCI registry.
// The tag list API carries no timestamps or platforms, so entries only have
// names. Pages are cut locally and cursors are decimal offsets.
type OCISource struct {
	pageSize int
	options  []remote.Option
}

// NewOCISource returns an OCISource using the default keychain for auth.
func NewOCISource(pageSize int, opts ...remote.Option) *OCISource {
	if pageSize <= 0 {
		pageSize = defaultOCIPageSize
	}
	if len(opts) == 0 {
		opts = []remote.Option{remote.WithAuthFromKeychain(authn.DefaultKeychain)}
	}
	return &OCISource{pageSize: pageSize, options: opts}
}

func (o *OCISource) FetchTags(ctx context.Context, repo, cursor string) (TagPage, error) {
	ref, err := name.NewRepository(repo, name.WeakValidation)
	if err != nil {
		return TagPage{}, &FetchError{URL: repo, Err: err}
	}
	offset := 0
	if cursor != "" {
		offset, err = strconv.Atoi(cursor)
		if err != nil || offset < 0 {
			return TagPage{}, &DecodeError{URL: ref.Name(), Err: fmt.Errorf("bad page cursor %q", cursor)}
		}
	}

	opts := append([]remote.Option{remote.WithContext(ctx)}, o.options...)
	names, err := remote.List(ref, opts...)
	if err != nil {
		return TagPage{}, &FetchError{URL: ref.Name(), Err: err}
	}

	if offset > len(names) {
		offset = len(names)
	}
	end := offset + o.pageSize
	if end > len(names) {
		end = len(names)
	}
	page := TagPage{Repo: repo, Rows: make([]TagEntry, 0, end-offset)}
	for _, tag := range names[offset:end] {
		page.Rows = append(page.Rows, TagEntry{Name: tag})
	}
	if end < len(names) {
		page.Next = strconv.Itoa(end)
	}
	if offset > 0 {
		prev := offset - o.pageSize
		if prev < 0 {
			prev = 0
		}
		page.Prev = strconv.Itoa(prev)
	}
	return page, nil
}
