package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSink_AppendsAndEchoes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dates.txt")
	if err := os.WriteFile(path, []byte("existing\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var echo bytes.Buffer
	sink, err := Open(path, &echo, true)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := sink.Emit("Ghostfirm Inc; ; ; ; ; 0; 9000"); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if err := sink.Emit("Acme Corp; Acme Corp; 1887; 1887; 1887; 3; 1887\n"); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "existing\nGhostfirm Inc; ; ; ; ; 0; 9000\nAcme Corp; Acme Corp; 1887; 1887; 1887; 3; 1887\n"
	if string(data) != want {
		t.Errorf("Unexpected file contents:\n%q\nwant:\n%q", data, want)
	}
	if echo.String() != want[len("existing\n"):] {
		t.Errorf("Unexpected echo: %q", echo.String())
	}
}

func TestFileSink_LockedByAnotherRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dates.txt")

	first, err := OpenFile(path, nil)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer func() { _ = first.Close() }()

	if _, err := OpenFile(path, nil); err == nil {
		t.Error("Expected second open to fail while locked")
	}
}

func TestOpen_Stdout(t *testing.T) {
	var out bytes.Buffer
	sink, err := Open("-", &out, false)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	_ = sink.Emit("line")
	_ = sink.Close()

	if out.String() != "line\n" {
		t.Errorf("Unexpected output %q", out.String())
	}
}
