package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/fractalview/internal/config"
	"github.com/san-kum/fractalview/internal/control"
	"github.com/san-kum/fractalview/internal/escape"
	"github.com/san-kum/fractalview/internal/render"
)

func recordSession(t *testing.T, cfg *config.Config, events ...control.Event) *control.Controller {
	t.Helper()
	scene, err := cfg.Scene()
	if err != nil {
		t.Fatal(err)
	}
	companion, err := cfg.Companion().Scene()
	if err != nil {
		t.Fatal(err)
	}
	ctrl := control.New(scene, render.New(1), control.Discard, control.WithScene(companion))
	for _, ev := range events {
		if _, err := ctrl.Dispatch(ev); err != nil {
			t.Fatalf("dispatch %v: %v", ev, err)
		}
	}
	return ctrl
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig("mandelbrot")
	cfg.Width, cfg.Height = 16, 9
	events := []control.Event{
		control.PointerPressed{X: 3.5, Y: 7},
		control.ScrollWheel{Delta: 2},
		control.SwitchVariant{Variant: escape.Julia},
		control.ScrollWheel{Delta: -0.25},
		control.ResetView{},
	}
	ctrl := recordSession(t, cfg, events...)

	id, err := st.Save(cfg, ctrl.History(), map[string]float64{"render_ms": 1.5})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty session id")
	}

	meta, err := st.Load(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Events != len(events) {
		t.Errorf("expected %d events, got %d", len(events), meta.Events)
	}
	if meta.Config != *cfg {
		t.Errorf("expected config %+v, got %+v", cfg, meta.Config)
	}
	if meta.Metrics["render_ms"] != 1.5 {
		t.Errorf("expected metric 1.5, got %v", meta.Metrics)
	}

	loaded, err := st.LoadEvents(id)
	if err != nil {
		t.Fatalf("load events failed: %v", err)
	}
	if len(loaded) != len(events) {
		t.Fatalf("expected %d events, got %d", len(events), len(loaded))
	}
	for i := range events {
		if loaded[i] != events[i] {
			t.Errorf("event %d: expected %v, got %v", i, events[i], loaded[i])
		}
	}
}

func TestReplayReproducesViewport(t *testing.T) {
	st := New(t.TempDir())
	cfg := config.DefaultConfig("julia")
	cfg.Width, cfg.Height = 20, 10

	original := recordSession(t, cfg,
		control.ScrollWheel{Delta: 3},
		control.PointerPressed{X: 1, Y: 9},
		control.ScrollWheel{Delta: 1.5},
		control.PointerPressed{X: 17.25, Y: 2},
	)
	id, err := st.Save(cfg, original.History(), nil)
	if err != nil {
		t.Fatal(err)
	}

	meta, _ := st.Load(id)
	events, err := st.LoadEvents(id)
	if err != nil {
		t.Fatal(err)
	}
	replayed := recordSession(t, &meta.Config, events...)

	if replayed.Viewport() != original.Viewport() {
		t.Errorf("expected %+v, got %+v", original.Viewport(), replayed.Viewport())
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	sessions, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 0 {
		t.Errorf("expected no sessions, got %d", len(sessions))
	}

	cfg := config.DefaultConfig("mandelbrot")
	cfg.Width, cfg.Height = 4, 4
	for i := 0; i < 2; i++ {
		if _, err := st.Save(cfg, nil, nil); err != nil {
			t.Fatal(err)
		}
	}

	sessions, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Errorf("expected 2 sessions, got %d", len(sessions))
	}
}

func TestListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "nope"))
	sessions, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 0 {
		t.Errorf("expected empty list, got %d", len(sessions))
	}
}

func TestLoadEventsCorrupt(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := os.MkdirAll(filepath.Join(dir, "bad"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []string{
		"seq,kind\n1,teleport,,,,\n",
		"seq,kind\n1,scroll,,,abc,\n",
		"seq,kind\n1,variant,,,,newton\n",
		"seq,kind\n1,pointer\n",
	}
	for _, content := range tests {
		path := filepath.Join(dir, "bad", "events.csv")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := st.LoadEvents("bad"); !errors.Is(err, ErrCorruptSession) {
			t.Errorf("%q: expected ErrCorruptSession, got %v", content, err)
		}
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	cfg := config.DefaultConfig("mandelbrot")
	cfg.Width, cfg.Height = 8, 8
	ctrl := recordSession(t, cfg, control.ScrollWheel{Delta: 1}, control.PointerPressed{X: 2, Y: 3})

	id, err := st.Save(cfg, ctrl.History(), nil)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, id); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Session.ID != id {
		t.Errorf("expected id %s, got %s", id, data.Session.ID)
	}
	if len(data.Events) != 2 || data.Events[0].Kind != control.KindScroll || data.Events[1].X != 2 {
		t.Errorf("unexpected events %+v", data.Events)
	}
}
