package glyph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Errorf("mismatch (-want +got):\n%s", d)
	}
}

// bareStem is Const(0) flattened on its own.
var bareStem = Stroke{From: Pt(0.5, 1), To: Pt(0.5, 0), Weight: 1}

func res(n int) Settings { return Settings{CircleResolution: n} }
