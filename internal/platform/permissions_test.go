package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestChmod(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	if err := os.WriteFile(path, []byte("api_key: x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(path, 0600); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("permissions = %o, want %o", perm, 0600)
		}
	}
}

func TestSecure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not supported")
	}

	tmp := t.TempDir()
	dir := filepath.Join(tmp, ".mortar")
	if err := os.MkdirAll(dir, DirPermNormal); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte("email: a@b.c\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want os.FileMode
	}{
		{"directory", dir, DirPermSecure},
		{"file", file, FilePermSecure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := IsSecure(tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if ok {
				t.Fatalf("IsSecure(%s) = true before Secure", tt.path)
			}

			if err := Secure(tt.path); err != nil {
				t.Fatalf("Secure failed: %v", err)
			}

			info, err := os.Stat(tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if perm := info.Mode().Perm(); perm != tt.want {
				t.Errorf("permissions = %o, want %o", perm, tt.want)
			}
			if ok, _ := IsSecure(tt.path); !ok {
				t.Errorf("IsSecure(%s) = false after Secure", tt.path)
			}
		})
	}
}

func TestSecureMissingPath(t *testing.T) {
	if err := Secure(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Secure on missing path should fail")
	}
}
