package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leap71/slicefile/cli"
	"github.com/leap71/slicefile/geom"
)

// layerDump flattens a slice for comparison after a write/read cycle.
type layerDump struct {
	Z        float64
	Contours [][]geom.Point
}

func dump(st *geom.SliceStack) []layerDump {
	out := make([]layerDump, 0, st.SliceCount())
	for i := 0; i < st.SliceCount(); i++ {
		s := st.SliceAt(i)
		d := layerDump{Z: s.Z()}
		for j := 0; j < s.ContourCount(); j++ {
			d.Contours = append(d.Contours, s.ContourAt(j).Vertices())
		}
		out = append(out, d)
	}
	return out
}

func ring(cx, cy, r float64, ccw bool) *geom.Contour {
	pts := []geom.Point{
		geom.Pt(cx-r, cy-r), geom.Pt(cx+r, cy-r),
		geom.Pt(cx+r, cy+r), geom.Pt(cx-r, cy+r),
	}
	if !ccw {
		pts[1], pts[3] = pts[3], pts[1]
	}
	return geom.NewContour(pts)
}

func buildPart(t *testing.T) *geom.SliceStack {
	t.Helper()
	st := geom.NewSliceStack()
	for i, z := range []float64{0.25, 0.5, 0.75} {
		// Counter-clockwise boundaries first, then the hole, matching the
		// partition order the encoder writes in so the cycle is order-exact.
		s := geom.NewSlice(z)
		s.AddContour(ring(5, 5, 4, true))
		if i == 2 {
			s.AddContour(ring(12, 5, 1, true))
		}
		s.AddContour(ring(5, 5, 2, false)) // hole
		st.AddSlices(s)
	}
	return st
}

func roundTrip(t *testing.T, enc *cli.Encoder, st *geom.SliceStack) *cli.DecodeResult {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, enc.Encode(&buf, st))
	res, err := cli.NewDecoder().Decode(strings.NewReader(buf.String()), int64(buf.Len()))
	require.NoError(t, err)
	return res
}

func TestRoundTripPreservesGeometry(t *testing.T) {
	st := buildPart(t)
	res := roundTrip(t, cli.NewEncoder(cli.FirstLayerHasContent), st)

	assert.Empty(t, res.Warnings, "a clean write/read cycle must not warn")
	if diff := cmp.Diff(dump(st), dump(res.Stack),
		cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("geometry mismatch (-wrote +read):\n%s", diff)
	}
}

func TestRoundTripEmptyFirstLayer(t *testing.T) {
	// The synthetic zero-height base layer is not addressable on read:
	// both modes decode back to the same stack.
	st := buildPart(t)
	res := roundTrip(t, cli.NewEncoder(cli.EmptyFirstLayer), st)

	assert.Empty(t, res.Warnings)
	assert.Equal(t, st.SliceCount(), res.Stack.SliceCount())
	if diff := cmp.Diff(dump(st), dump(res.Stack),
		cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("geometry mismatch (-wrote +read):\n%s", diff)
	}
}

func TestRoundTripUnitScale(t *testing.T) {
	st := buildPart(t)
	enc := cli.NewEncoder(cli.FirstLayerHasContent, cli.WithUnitScale(0.01))
	res := roundTrip(t, enc, st)

	assert.Empty(t, res.Warnings)
	assert.Equal(t, 0.01, res.Meta.Units)
	if diff := cmp.Diff(dump(st), dump(res.Stack),
		cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("geometry mismatch (-wrote +read):\n%s", diff)
	}
}

func TestRoundTripBoundingBox(t *testing.T) {
	st := buildPart(t)
	res := roundTrip(t, cli.NewEncoder(cli.FirstLayerHasContent), st)

	if diff := cmp.Diff(st.BoundingBox(), res.Meta.DeclaredBBox,
		cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("declared bbox drifted (-computed +declared):\n%s", diff)
	}
	if diff := cmp.Diff(st.BoundingBox(), res.Stack.BoundingBox(),
		cmpopts.EquateApprox(0, 1e-4)); diff != "" {
		t.Errorf("recomputed bbox drifted (-wrote +read):\n%s", diff)
	}
}

func TestRoundTripWindingSurvives(t *testing.T) {
	st := buildPart(t)
	res := roundTrip(t, cli.NewEncoder(cli.FirstLayerHasContent), st)

	for i := 0; i < res.Stack.SliceCount(); i++ {
		s := res.Stack.SliceAt(i)
		require.GreaterOrEqual(t, s.ContourCount(), 2)
		assert.Equal(t, geom.CounterClockwise, s.ContourAt(0).WindingDefault(),
			"outer boundary must stay counter-clockwise")
		var sawCW bool
		for j := 0; j < s.ContourCount(); j++ {
			if s.ContourAt(j).WindingDefault() == geom.Clockwise {
				sawCW = true
			}
		}
		assert.True(t, sawCW, "hole must stay clockwise")
	}
}
