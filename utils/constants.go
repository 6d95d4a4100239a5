// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// Token lifetimes.
const (
	UserTokenTTL   = time.Hour
	WorkerTokenTTL = 12 * time.Hour
)

// Token roles.
const (
	RoleUser   = "user"
	RoleWorker = "worker"
)
