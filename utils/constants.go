package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries. It is
// also the effective session length: tokens expire on the same clock.
const AuthCacheTTL = time.Hour
