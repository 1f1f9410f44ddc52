package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/fishfeed/config"
)

var field = config.PlayfieldConfig{Left: 0, Right: 384, Floor: 0, Top: 216}

func TestNew(t *testing.T) {
	cam := New(1280, 720, field, 0)

	// Should be centered on the playfield
	if cam.X != 192 || cam.Y != 108 {
		t.Errorf("expected camera at (192, 108), got (%f, %f)", cam.X, cam.Y)
	}
	// 1280/384 and 720/216 are both 10/3
	if math.Abs(cam.Zoom-10.0/3) > 1e-9 {
		t.Errorf("expected fit zoom 3.333, got %f", cam.Zoom)
	}
}

func TestWorldToScreenYUp(t *testing.T) {
	cam := New(1280, 720, field, 0)

	sx, sy := cam.WorldToScreen(192, 108)
	if math.Abs(sx-640) > 0.01 || math.Abs(sy-360) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}

	// Floor is the bottom edge of the screen
	_, sy = cam.WorldToScreen(0, 0)
	if math.Abs(sy-720) > 0.01 {
		t.Errorf("expected floor at screen y 720, got %f", sy)
	}
	_, sy = cam.WorldToScreen(0, 216)
	if math.Abs(sy) > 0.01 {
		t.Errorf("expected top at screen y 0, got %f", sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, field, 0)
	cam.SetZoom(5)
	cam.Pan(120, -40)

	testCases := []struct{ sx, sy float64 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(sx-tc.sx) > 0.01 || math.Abs(sy-tc.sy) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestScreenToPlayfield(t *testing.T) {
	cam := New(1280, 720, field, 0)

	x, y, ok := cam.ScreenToPlayfield(0, 720)
	if !ok || math.Abs(x) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Errorf("ScreenToPlayfield(0, 720) = (%f, %f, %v), want (0, 0, true)", x, y, ok)
	}

	// Off-screen points still map; bounds are the caller's concern
	if _, _, ok := cam.ScreenToPlayfield(-500, 0); !ok {
		t.Error("off-screen point should still map")
	}

	if _, _, ok := cam.ScreenToPlayfield(math.NaN(), 0); ok {
		t.Error("NaN input should fail")
	}

	cam.Zoom = 0
	if _, _, ok := cam.ScreenToPlayfield(640, 360); ok {
		t.Error("zero zoom should fail")
	}
}

func TestPanClampsToPlayfield(t *testing.T) {
	cam := New(1280, 720, field, 0)

	cam.Pan(-100000, 0)
	if cam.X != field.Left {
		t.Errorf("expected X clamped to %f, got %f", field.Left, cam.X)
	}

	// Dragging down the screen moves the view toward the top
	cam.Pan(0, -100000)
	if cam.Y != field.Top {
		t.Errorf("expected Y clamped to %f, got %f", field.Top, cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, field, 0)

	cam.SetZoom(0.1) // Below min
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.SetZoom(1000) // Above max
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}

	cam.ZoomBy(0.5)
	if math.Abs(cam.Zoom-cam.MaxZoom/2) > 1e-9 {
		t.Errorf("expected zoom %f, got %f", cam.MaxZoom/2, cam.Zoom)
	}
}

func TestResize(t *testing.T) {
	cam := New(1280, 720, field, 0)
	cam.Resize(640, 360)

	if math.Abs(cam.MinZoom-5.0/3) > 1e-9 {
		t.Errorf("expected MinZoom 1.667, got %f", cam.MinZoom)
	}
	if cam.Zoom > cam.MaxZoom || cam.Zoom < cam.MinZoom {
		t.Errorf("zoom %f outside [%f, %f]", cam.Zoom, cam.MinZoom, cam.MaxZoom)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, field, 0)
	cam.SetZoom(cam.MaxZoom)

	if !cam.IsVisible(192, 108, 1) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(0, 0, 1) {
		t.Error("corner should not be visible when zoomed in")
	}
	if !cam.IsVisible(100, 108, 60) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, field, 4)
	cam.Pan(300, 300)
	cam.SetZoom(8)

	cam.Reset()

	if cam.X != 192 || cam.Y != 108 {
		t.Errorf("expected position (192, 108), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 4 {
		t.Errorf("expected zoom 4, got %f", cam.Zoom)
	}
}
