package util

import (
	"os"
	"path/filepath"
	"testing"
)

type jsonSimpleTest struct {
	Name   string  `json:"name"`
	Age    int     `json:"age"`
	Height float32 `json:"height"`
}

func TestJSONSimple(t *testing.T) {
	file := "./testdata/simple.json"

	rows, err := ReadJSONFromFile[[]jsonSimpleTest](file)
	if err != nil {
		t.Fatalf("ReadJSONFromFile() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %v; want 3", len(rows))
	}
	if rows[0].Name != "John" || rows[0].Age != 30 || rows[0].Height != 170 {
		t.Errorf("rows[0] = %v; want John", rows[0])
	}
	if rows[2].Name != "Joe" || rows[2].Age != 35 || rows[2].Height != 175.5 {
		t.Errorf("rows[2] = %v; want Joe", rows[2])
	}
}

func TestJSONMissingFile(t *testing.T) {
	_, err := ReadJSONFromFile[[]jsonSimpleTest]("./testdata/missing.json")
	if err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestHashFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	os.WriteFile(a, []byte("cell,lat\nA,1\n"), 0o644)
	os.WriteFile(b, []byte("cell,lat\nA,1\n"), 0o644)

	h1, err := HashFiles(a, "")
	if err != nil {
		t.Fatalf("HashFiles() error = %v", err)
	}
	h2, _ := HashFiles(a)
	if h1 != h2 {
		t.Errorf("empty path changed the hash")
	}
	h3, _ := HashFiles(b)
	if h1 == h3 {
		t.Errorf("different file names should give different versions")
	}

	os.WriteFile(a, []byte("cell,lat\nA,2\n"), 0o644)
	h4, _ := HashFiles(a)
	if h1 == h4 {
		t.Errorf("changed content kept the same version")
	}

	if _, err := HashFiles(filepath.Join(dir, "missing.csv")); err == nil {
		t.Errorf("expected error for missing file")
	}
}
