//go:build !integration

package metrics

import "testing"

func TestSourceKind(t *testing.T) {
	cases := []struct {
		locator string
		want    string
	}{
		{"https://cdn.example.com/providers.json", "http"},
		{"HTTP://cdn.example.com/providers.json", "http"},
		{"postgres:providers", "postgres"},
		{"./data/providers.json", "file"},
		{"/srv/catalog/providers.json", "file"},
	}
	for _, tc := range cases {
		if got := SourceKind(tc.locator); got != tc.want {
			t.Errorf("SourceKind(%q) = %q, want %q", tc.locator, got, tc.want)
		}
	}
}
