package migrate

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"testing"
)

func TestSource_EmbeddedMigrations(t *testing.T) {
	t.Parallel()

	src, err := Source()
	if err != nil {
		t.Fatalf("Source failed: %v", err)
	}
	defer src.Close()

	first, err := src.First()
	if err != nil {
		t.Fatalf("First failed: %v", err)
	}
	if first != 1 {
		t.Errorf("first version = %d, want 1", first)
	}

	next, err := src.Next(first)
	if err != nil {
		t.Fatalf("Next(%d) failed: %v", first, err)
	}
	if next != 2 {
		t.Errorf("second version = %d, want 2", next)
	}

	if _, err := src.Next(next); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Next(%d) = %v, want fs.ErrNotExist", next, err)
	}
}

func TestSource_UpAndDownBodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version    uint
		identifier string
		upHas      string
		downHas    string
	}{
		{1, "users", "CREATE TABLE", "DROP TABLE"},
		{2, "meals", "CREATE TABLE", "DROP TABLE"},
	}

	src, err := Source()
	if err != nil {
		t.Fatalf("Source failed: %v", err)
	}
	defer src.Close()

	for _, tt := range tests {
		up, identifier, err := src.ReadUp(tt.version)
		if err != nil {
			t.Fatalf("ReadUp(%d) failed: %v", tt.version, err)
		}
		body, _ := io.ReadAll(up)
		up.Close()
		if identifier != tt.identifier {
			t.Errorf("version %d identifier = %q, want %q", tt.version, identifier, tt.identifier)
		}
		if !strings.Contains(strings.ToUpper(string(body)), tt.upHas) {
			t.Errorf("version %d up body lacks %q", tt.version, tt.upHas)
		}

		down, _, err := src.ReadDown(tt.version)
		if err != nil {
			t.Fatalf("ReadDown(%d) failed: %v", tt.version, err)
		}
		body, _ = io.ReadAll(down)
		down.Close()
		if !strings.Contains(strings.ToUpper(string(body)), tt.downHas) {
			t.Errorf("version %d down body lacks %q", tt.version, tt.downHas)
		}
	}
}

func TestSlogLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := slogLogger{logger: slog.New(slog.NewTextHandler(&buf, nil))}

	l.Printf("Finished 2/u meals (read 1ms, ran 3ms)\n")

	out := buf.String()
	if !strings.Contains(out, "Finished 2/u meals") || !strings.Contains(out, "component=migrate") {
		t.Errorf("unexpected log line: %s", out)
	}
	if l.Verbose() {
		t.Error("verbose output should stay off")
	}
}
