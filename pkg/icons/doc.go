// Package icons describes icon fetch requests and the fetchers that resolve
// them into payloads (typically SVG markup).
//
// A [Request] is attached to a node while its icon is being loaded. The
// lazy-load pipeline in pkg/optimize hands requests to a [Fetcher]; the
// fetcher owns timeout and retry policy.
//
// Available fetchers:
//   - [DirFetcher]: reads <dir>/<name>.<format> from the local filesystem
//   - [HTTPFetcher]: GETs Request.URL with retry on transient failures
//   - [FetcherFunc]: adapts a plain function
//   - [FailingFetcher]: always fails (default when nothing is configured)
package icons
