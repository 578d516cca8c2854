package utils

import "os"

// SafeEnv looks up key and falls back to def when the variable is unset or
// empty. Empty counts as unset so `ESG_ADDR= ./server` still gets a usable
// default.
func SafeEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
