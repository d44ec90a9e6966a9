package raster

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"wireframe-rasterizer/internal/mathutil"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLoggerCapturesDraw(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	r := New(16, 16)
	vb := r.LoadVertices([]mathutil.Vec3{{0, 0, 0}, {0.5, 0, 0}, {0, 0.5, 0}})
	ib := r.LoadIndices([][3]uint32{{0, 1, 2}})
	if err := r.Draw(vb, ib, PrimitiveTriangle); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"vertices loaded", "indices loaded", "raster: draw", "triangles=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}

func TestOutOfBoundsPixelDoesNotLog(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	r := New(4, 4)
	r.SetPixel(mathutil.Vec3{10, 10, 0}, Red)
	r.DrawLine(mathutil.Vec3{-20, -20, 0}, mathutil.Vec3{-5, -9, 0})
	if buf.Len() != 0 {
		t.Errorf("clipped writes logged: %s", buf.String())
	}
}
