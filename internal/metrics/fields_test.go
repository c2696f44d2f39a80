package metrics

import "testing"

func TestMetricFieldKeysAreStable(t *testing.T) {
	for _, key := range []string{AttrMethod, AttrPath, AttrStatus, AttrProvider, AttrLeague, AttrFallback} {
		if key == "" {
			t.Fatalf("expected metric attribute keys to be non-empty")
		}
	}
}
