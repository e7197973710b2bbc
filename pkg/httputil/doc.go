// Package httputil provides HTTP helpers shared by network-backed icon
// fetchers.
//
// [Retry] re-runs an operation with exponential backoff, but only for errors
// wrapped with [Retryable] (transport failures, 5xx responses). Everything
// else is returned immediately:
//
//	err := httputil.Retry(ctx, httputil.DefaultPolicy, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    ...
//	})
package httputil
