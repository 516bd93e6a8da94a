// Package registry lists image tags from container registries.
//
// Docker Hub repositories are served by HubSource, which talks to the Hub
// tag-listing endpoint and returns one page per call together with the
// opaque next/previous cursors the endpoint hands out. Repositories hosted on
// any other registry go through OCISource, which uses the distribution tag
// list API via go-containerregistry and pages the result locally. Router picks
// between the two from the repository's registry host.
//
// NormalizeRepo and RepositoryFromImage are pure helpers shared by the UI
// when turning user input or an image token into a repository to fetch.
package registry
