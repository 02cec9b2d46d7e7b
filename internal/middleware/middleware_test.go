package middleware_test

import "business-hub/backend/internal/config"

func rateLimitConfig(enabled bool, rpm, burst int) config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        enabled,
		RequestsPerMin: rpm,
		BurstSize:      burst,
	}
}
