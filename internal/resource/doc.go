// Package resource bounds the memory, concurrency and IO of archive uploads.
//
//	┌──────────────────────────────────────────────────────┐
//	│                     Controller                       │
//	├────────────────┬────────────────┬────────────────────┤
//	│ Memory limit   │ Upload slots   │ IO rate limiter    │
//	│ (weighted sem) │ (weighted sem) │ (token bucket)     │
//	├────────────────┼────────────────┼────────────────────┤
//	│ AcquireMemory  │ AcquireUpload  │ AcquireIO          │
//	│ ReleaseMemory  │ TryAcquire…    │                    │
//	│ MemoryUsage    │ ReleaseUpload  │                    │
//	└────────────────┴────────────────┴────────────────────┘
//
// AcquireMemory blocks until the payload fits under the limit. A payload
// larger than the whole limit is admitted alone.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   64 << 20,
//	    MaxUploads:         4,
//	    IOLimitBytesPerSec: 10 << 20,
//	})
//
//	if err := rc.AcquireUpload(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseUpload()
//
// All methods are safe for concurrent use and treat a nil Controller as
// unlimited.
package resource
