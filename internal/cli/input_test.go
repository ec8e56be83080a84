package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/nameplate/pkg/errors"
)

func TestNamesInputRead(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "names.txt")
	if err := os.WriteFile(file, []byte("Grace; Alan\n\n张三，李四\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		in    namesInput
		args  []string
		stdin string
		want  []string
	}{
		{"args only", namesInput{}, []string{"Ada", "Grace,Alan"}, "", []string{"Ada", "Grace", "Alan"}},
		{"file after args", namesInput{file: file}, []string{"Ada"}, "", []string{"Ada", "Grace", "Alan", "张三", "李四"}},
		{"stdin", namesInput{file: "-"}, nil, "Edsger\nBarbara", []string{"Edsger", "Barbara"}},
		{"dedupe", namesInput{dedupe: true}, []string{"Ada", "Alan", "Ada"}, "", []string{"Ada", "Alan"}},
		{"nothing", namesInput{}, nil, "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.read(tt.args, strings.NewReader(tt.stdin))
			if err != nil {
				t.Fatalf("read() error: %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("read() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNamesInputRejectsLongNames(t *testing.T) {
	in := namesInput{}
	_, err := in.read([]string{strings.Repeat("x", errors.MaxNameLength+1)}, strings.NewReader(""))
	if !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("read(long) error = %v, want INVALID_NAME", err)
	}
}

func TestNamesInputMissingFile(t *testing.T) {
	in := namesInput{file: filepath.Join(t.TempDir(), "missing.txt")}
	if _, err := in.read(nil, strings.NewReader("")); err == nil {
		t.Error("read(missing file) error = nil, want error")
	}
}
