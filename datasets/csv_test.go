package datasets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeCSV writes a CSV file with the given header and rows to path.
func writeCSV(t *testing.T, path, header string, rows []string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create csv %s: %v", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(header + "\n"); err != nil {
		t.Fatalf("failed to write header: %v", err)
	}
	for _, r := range rows {
		if _, err := f.WriteString(r + "\n"); err != nil {
			t.Fatalf("failed to write row: %v", err)
		}
	}
}

func TestLoadCSVLabelColumnAnywhere(t *testing.T) {
	in := "x, Class ,y\n1,1,2\n3,-1,4\n5,1,6\n"
	ds, err := LoadCSV(strings.NewReader(in), "class")
	if err != nil {
		t.Fatalf("LoadCSV error: %v", err)
	}
	if ds.Len() != 3 || ds.Dim != 2 || ds.Classes != 2 {
		t.Fatalf("unexpected dataset: len=%d dim=%d classes=%d", ds.Len(), ds.Dim, ds.Classes)
	}
	if ds.FeatureNames[0] != "x" || ds.FeatureNames[1] != "y" {
		t.Fatalf("unexpected feature names: %v", ds.FeatureNames)
	}
	s := ds.Samples[1]
	if s.Features[0] != 3 || s.Features[1] != 4 || s.Label != -1 {
		t.Fatalf("unexpected sample 1: %+v", s)
	}
}

func TestLoadCSVMissingLabelColumn(t *testing.T) {
	in := "x,y\n1,2\n"
	if _, err := LoadCSV(strings.NewReader(in), ""); err == nil {
		t.Fatalf("expected error when label column is missing")
	}
}

func TestLoadCSVBadValue(t *testing.T) {
	in := "x,y,label\n1,2,1\n1,,1\n"
	if _, err := LoadCSV(strings.NewReader(in), ""); err == nil {
		t.Fatalf("expected parse error for empty field")
	}
}

func TestOpenCSVConcatenatesFiles(t *testing.T) {
	tmp := t.TempDir()
	header := "x,y,label"
	writeCSV(t, filepath.Join(tmp, "a.csv"), header, []string{"1,2,1", "3,4,-1"})
	writeCSV(t, filepath.Join(tmp, "b.csv"), header, []string{"5,6,1"})

	ds, err := OpenCSV(filepath.Join(tmp, "*.csv"), "label")
	if err != nil {
		t.Fatalf("OpenCSV error: %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", ds.Len())
	}
	if ds.Samples[2].Features[0] != 5 {
		t.Fatalf("expected b.csv rows last, got %v", ds.Samples[2].Features)
	}

	batch, err := ds.Batch([]int{2, 0})
	if err != nil {
		t.Fatalf("Batch error: %v", err)
	}
	if batch[0].Features[0] != 5 || batch[1].Features[0] != 1 {
		t.Fatalf("unexpected batch order: %+v", batch)
	}
	if _, err := ds.Batch([]int{3}); err == nil {
		t.Fatalf("expected out-of-range batch error")
	}
}

func TestOpenCSVColumnMismatch(t *testing.T) {
	tmp := t.TempDir()
	writeCSV(t, filepath.Join(tmp, "a.csv"), "x,y,label", []string{"1,2,1"})
	writeCSV(t, filepath.Join(tmp, "b.csv"), "x,z,label", []string{"1,2,1"})
	if _, err := OpenCSV(filepath.Join(tmp, "*.csv"), ""); err == nil {
		t.Fatalf("expected error for mismatched columns")
	}
}

func TestOpenCSVNoFiles(t *testing.T) {
	if _, err := OpenCSV(filepath.Join(t.TempDir(), "*.csv"), ""); err == nil {
		t.Fatalf("expected error when no files match")
	}
}
