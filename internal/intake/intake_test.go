package intake

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAllowed(t *testing.T) {
	tests := map[string]bool{
		"resume.txt":    true,
		"resume.MD":     true,
		"dir/cv.Txt":    true,
		"resume.pdf":    false,
		"resume.docx":   false,
		"resume":        false,
		"notes.txt.bak": false,
	}
	for name, want := range tests {
		if got := Allowed(name); got != want {
			t.Errorf("Allowed(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestReadTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.md")
	content := "# Jane Doe\n\n- Go, Kubernetes\n- Café ☕\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadTextFile(path)
	if err != nil {
		t.Fatalf("ReadTextFile: %v", err)
	}
	if got != content {
		t.Errorf("got %q, want %q", got, content)
	}
}

func TestReadTextFile_RejectsBinaryFormats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadTextFile(path); !errors.Is(err, ErrUnsupportedFile) {
		t.Errorf("err = %v, want ErrUnsupportedFile", err)
	}
}

func TestReadTextFile_Missing(t *testing.T) {
	if _, err := ReadTextFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadArg_Stdin(t *testing.T) {
	got, err := ReadArg("-", strings.NewReader("from stdin"))
	if err != nil {
		t.Fatalf("ReadArg: %v", err)
	}
	if got != "from stdin" {
		t.Errorf("got %q", got)
	}
}
