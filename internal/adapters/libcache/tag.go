package libcache

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// RuntimeTag keys the cache files to the runtime and compilers that produced
// them, so that switching toolchains never reuses stale library names.
func RuntimeTag(runtimeVersion string, compilers ...string) string {
	h := xxhash.New()
	_, _ = h.WriteString(runtimeVersion)
	_, _ = h.Write([]byte{0})
	for _, c := range compilers {
		_, _ = h.WriteString(c)
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
