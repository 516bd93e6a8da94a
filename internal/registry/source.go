package registry

import "context"

// Source lists one page of tags for a repository. An empty cursor requests
// the first page; otherwise cursor is a value previously returned in
// TagPage.Next or TagPage.Prev.
type Source interface {
	FetchTags(ctx context.Context, repo, cursor string) (TagPage, error)
}

// Router sends Docker Hub repositories to Hub and everything else to OCI.
type Router struct {
	Hub Source
	OCI Source
}

// NewRouter builds a Router from the two backends.
func NewRouter(hub, oci Source) *Router {
	return &Router{Hub: hub, OCI: oci}
}

func (r *Router) FetchTags(ctx context.Context, repo, cursor string) (TagPage, error) {
	if IsHubRepository(repo) || r.OCI == nil {
		page, err := r.Hub.FetchTags(ctx, hubPath(repo), cursor)
		page.Repo = repo
		return page, err
	}
	return r.OCI.FetchTags(ctx, repo, cursor)
}
