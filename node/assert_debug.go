//go:build subdivdebug

package node

import "fmt"

// assertField panics when value does not fit in [0, maxValue].
// Compiled in only with the subdivdebug build tag.
func assertField(name string, value, maxValue int) {
	if value < 0 || value > maxValue {
		panic(fmt.Sprintf("node: %s = %d out of range [0, %d]", name, value, maxValue))
	}
}
