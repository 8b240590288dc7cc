//go:build debug

package debug

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConfigureListEnabled(t *testing.T) {
	t.Cleanup(func() { Configure("all") })

	testCases := []struct {
		list string
		want []Category
	}{
		{"canvas, app", []Category{APP, CANVAS}},
		{"none", nil},
		{"all", []Category{APP, CANVAS, CATALOG, GALLERY, IMAGE, STORE, TREE, UI}},
	}
	for _, tc := range testCases {
		Configure(tc.list)
		if diff := cmp.Diff(tc.want, ListEnabled()); diff != "" {
			t.Errorf("Configure(%q) mismatch (-want +got):\n%s", tc.list, diff)
		}
	}
}
