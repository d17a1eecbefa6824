package utils

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	gzip "github.com/klauspost/pgzip"
)

func TestAbs(t *testing.T) {
	for i, c := range []struct {
		val      int
		expected int
	}{
		{-300, 300},
		{250, 250},
		{0, 0},
	} {
		m := Abs(c.val)
		if m != c.expected {
			t.Errorf("[%d] Expected %v, got %v", i, c.expected, m)
		}
	}
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := OutputJSON(&buf, map[string]int{"count": 3}); err != nil {
		t.Fatal(err)
	}
	expected := "{\n\t\"count\": 3\n}\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestNewWriterGzip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "stats.json.gz")
	w, err := NewWriter(out)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(gz)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "hello" {
		t.Errorf("Expected %q, got %q", "hello", b)
	}
}

func TestNewReader(t *testing.T) {
	dir := t.TempDir()
	for i, name := range []string{"stats.json", "stats.json.gz"} {
		path := filepath.Join(dir, name)
		w, err := NewWriter(path)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte("hello")); err != nil {
			t.Fatal(err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}
		r, err := NewReader(path)
		if err != nil {
			t.Fatal(err)
		}
		b, err := io.ReadAll(r)
		if err != nil {
			t.Fatal(err)
		}
		if err := r.Close(); err != nil {
			t.Fatal(err)
		}
		if string(b) != "hello" {
			t.Errorf("[%d] %s: expected %q, got %q", i, name, "hello", b)
		}
	}
	if _, err := NewReader(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
