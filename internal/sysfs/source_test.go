package sysfs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeAttr(t *testing.T, root, path, content string) {
	t.Helper()
	full := filepath.Join(root, path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFileSourceRead(t *testing.T) {
	root := t.TempDir()
	writeAttr(t, root, "/sys/a", "  1804800\n")
	writeAttr(t, root, "/sys/empty", "")
	writeAttr(t, root, "/sys/blank", " \n\t")
	writeAttr(t, root, "/sys/big", strings.Repeat("x", 2*MaxAttrSize))

	src := NewFileSource(root)

	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"/sys/a", "1804800", true},
		{"/sys/empty", "", false},
		{"/sys/blank", "", false},
		{"/sys/missing", "", false},
		{"/sys/big", strings.Repeat("x", MaxAttrSize), true},
	}

	for _, tt := range tests {
		got, ok := src.Read(tt.path)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Read(%s) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFileSourceReadDirectoryIsAbsent(t *testing.T) {
	root := t.TempDir()
	writeAttr(t, root, "/sys/dir/x", "1")

	if _, ok := NewFileSource(root).Read("/sys/dir"); ok {
		t.Fatal("directory must read as absent")
	}
}

func TestFileSourceReadFile(t *testing.T) {
	root := t.TempDir()
	content := strings.Repeat("cpu  1 2 3 4 5 6 7\n", 1000)
	writeAttr(t, root, "/proc/stat", content)

	src := NewFileSource(root)

	got, ok := src.ReadFile("/proc/stat", 1<<20)
	if !ok || string(got) != content {
		t.Fatalf("ReadFile returned %d bytes, ok=%v", len(got), ok)
	}

	got, ok = src.ReadFile("/proc/stat", 100)
	if !ok || len(got) != 100 {
		t.Fatalf("limited ReadFile returned %d bytes", len(got))
	}

	if _, ok := src.ReadFile("/proc/none", 100); ok {
		t.Fatal("missing file must be absent")
	}
}

func TestFileSourceExists(t *testing.T) {
	root := t.TempDir()
	writeAttr(t, root, "/sys/devices/system/cpu/cpu0/online", "1")

	src := NewFileSource(root)
	if !src.Exists("/sys/devices/system/cpu/cpu0") {
		t.Error("cpu0 should exist")
	}
	if src.Exists("/sys/devices/system/cpu/cpu1") {
		t.Error("cpu1 should not exist")
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"42", 42, true},
		{" -7 ", -7, true},
		{"12.9", 12, true},
		{"abc", 0, false},
		{"1e19", 0, false},
		{"-9.3e18", 0, false},
		{"+Inf", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseInt(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseInt(%q) = %d, %v", tt.in, got, ok)
		}
	}
}
