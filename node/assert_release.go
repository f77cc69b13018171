//go:build !subdivdebug

package node

// assertField is a no-op in regular builds. See assert_debug.go.
func assertField(string, int, int) {}
