package harness

import (
	"bytes"
	"fmt"
)

// compareArtifact returns "" if got equals want byte for byte, otherwise a
// message naming the artifact and the first differing offset.
func compareArtifact(name string, want, got []byte) string {
	if bytes.Equal(want, got) {
		return ""
	}
	return fmt.Sprintf("%s differs at byte %d (expected %d bytes, got %d bytes)",
		name, firstDiff(want, got), len(want), len(got))
}

func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
