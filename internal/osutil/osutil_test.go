package osutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// MockPathProvider is a mock implementation for testing.
type MockPathProvider struct {
	UserConfigDirFn func() (string, error)
	UserHomeDirFn   func() (string, error)
	GetwdFn         func() (string, error)
	MkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *MockPathProvider) UserConfigDir() (string, error) {
	if m.UserConfigDirFn != nil {
		return m.UserConfigDirFn()
	}
	return "", nil
}

func (m *MockPathProvider) UserHomeDir() (string, error) {
	if m.UserHomeDirFn != nil {
		return m.UserHomeDirFn()
	}
	return "", nil
}

func (m *MockPathProvider) Getwd() (string, error) {
	if m.GetwdFn != nil {
		return m.GetwdFn()
	}
	return "", nil
}

func (m *MockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return nil
}

func TestDefaultPathProvider_UserConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	p := DefaultPathProvider{}
	dir, err := p.UserConfigDir()
	if err != nil {
		t.Fatalf("UserConfigDir returned error: %v", err)
	}
	if dir == "" {
		t.Error("UserConfigDir returned empty string")
	}
}

func TestDefaultPathProvider_UserHomeDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	p := DefaultPathProvider{}
	dir, err := p.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir returned error: %v", err)
	}
	if dir != home {
		t.Errorf("UserHomeDir() = %q, expected %q", dir, home)
	}
}

func TestDefaultPathProvider_Getwd(t *testing.T) {
	p := DefaultPathProvider{}
	dir, err := p.Getwd()
	if err != nil {
		t.Fatalf("Getwd returned error: %v", err)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("Getwd() = %q, expected an absolute path", dir)
	}
}

func TestDefaultPathProvider_MkdirAll(t *testing.T) {
	p := DefaultPathProvider{}
	testDir := filepath.Join(t.TempDir(), "test", "nested", "dir")

	if err := p.MkdirAll(testDir, 0755); err != nil {
		t.Fatalf("MkdirAll returned error: %v", err)
	}

	info, err := os.Stat(testDir)
	if err != nil {
		t.Fatalf("Failed to stat created directory: %v", err)
	}
	if !info.IsDir() {
		t.Error("MkdirAll did not create a directory")
	}
}

func TestSetProvider(t *testing.T) {
	defer ResetProvider()

	mock := &MockPathProvider{
		UserHomeDirFn: func() (string, error) {
			return "", errors.New("no home")
		},
	}
	SetProvider(mock)

	if Provider != mock {
		t.Fatal("SetProvider did not replace the provider")
	}
	if _, err := Provider.UserHomeDir(); err == nil {
		t.Error("expected error from mocked UserHomeDir")
	}
}

func TestResetProvider(t *testing.T) {
	SetProvider(&MockPathProvider{})
	ResetProvider()

	if _, ok := Provider.(DefaultPathProvider); !ok {
		t.Errorf("ResetProvider() left %T, expected DefaultPathProvider", Provider)
	}
}
