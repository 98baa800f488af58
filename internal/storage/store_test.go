package storage

import (
	"math"
	"testing"

	"github.com/pkozlow/gaslab/internal/config"
	"github.com/pkozlow/gaslab/internal/engine"
)

func testResult() *engine.Result {
	return &engine.Result{
		Steps:    3,
		Times:    []float64{1, 2, 3},
		Energy:   []float64{100.5, 100.5, 100.4},
		Drift:    []float64{0, 0, 0.1},
		Pressure: []float64{0.5, 0.6, 0.55},
		Baseline: 100.5,
		Metrics:  map[string]float64{"energy_drift": 0.1},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Seed = 42
	cfg.Particles = 100

	runID, err := st.Save(cfg, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.ID != runID {
		t.Errorf("id = %s, want %s", meta.ID, runID)
	}
	if meta.Seed != 42 || meta.Particles != 100 {
		t.Errorf("config fields not persisted: %+v", meta)
	}
	if meta.Baseline != 100.5 {
		t.Errorf("baseline = %f, want 100.5", meta.Baseline)
	}
	if meta.Metrics["energy_drift"] != 0.1 {
		t.Errorf("metrics not persisted: %+v", meta.Metrics)
	}
}

func TestLoadSeries(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	result := testResult()
	runID, err := st.Save(config.DefaultConfig(), result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}

	if len(series.Times) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(series.Times))
	}
	for i := range result.Times {
		if math.Abs(series.Energy[i]-result.Energy[i]) > 1e-6 {
			t.Errorf("sample %d: energy %f, want %f", i, series.Energy[i], result.Energy[i])
		}
		if math.Abs(series.Pressure[i]-result.Pressure[i]) > 1e-6 {
			t.Errorf("sample %d: pressure %f, want %f", i, series.Pressure[i], result.Pressure[i])
		}
	}
}

func TestListEmptyDir(t *testing.T) {
	st := New(t.TempDir() + "/does-not-exist")

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestListSkipsForeignEntries(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(config.DefaultConfig(), testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != runID {
		t.Errorf("expected exactly run %s, got %+v", runID, runs)
	}
}
