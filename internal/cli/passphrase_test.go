package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParsePassphraseSpecDev(t *testing.T) {
	cases := []string{"dev:tty-stdin", "dev:stdin-once", "dev:tty-once"}
	for _, spec := range cases {
		method, arg, err := ParsePassphraseSpec(spec)
		if err != nil {
			t.Fatalf("ParsePassphraseSpec(%q): %v", spec, err)
		}
		if method != spec || arg != "" {
			t.Errorf("ParsePassphraseSpec(%q) = (%q, %q)", spec, method, arg)
		}
	}
}

func TestParsePassphraseSpecEnv(t *testing.T) {
	method, arg, err := ParsePassphraseSpec("env:MY_PASSPHRASE")
	if err != nil {
		t.Fatalf("ParsePassphraseSpec: %v", err)
	}
	if method != "env" || arg != "MY_PASSPHRASE" {
		t.Errorf("got (%q, %q)", method, arg)
	}
}

func TestParsePassphraseSpecFile(t *testing.T) {
	method, arg, err := ParsePassphraseSpec("file:/tmp/secret.txt")
	if err != nil {
		t.Fatalf("ParsePassphraseSpec: %v", err)
	}
	if method != "file" || arg != "/tmp/secret.txt" {
		t.Errorf("got (%q, %q)", method, arg)
	}
}

func TestParsePassphraseSpecRejectsUnknown(t *testing.T) {
	if _, _, err := ParsePassphraseSpec("bogus:whatever"); err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestParsePassphraseSpecRejectsMissingArg(t *testing.T) {
	if _, _, err := ParsePassphraseSpec("env:"); err == nil {
		t.Fatal("expected error for env: with no name")
	}
	if _, _, err := ParsePassphraseSpec("file:"); err == nil {
		t.Fatal("expected error for file: with no path")
	}
}

func TestResolvePassphraseEnv(t *testing.T) {
	t.Setenv("SCRYPTENC_TEST_PASSPHRASE", "hunter2")

	pw, err := ResolvePassphrase("env", "SCRYPTENC_TEST_PASSPHRASE", false)
	if err != nil {
		t.Fatalf("ResolvePassphrase: %v", err)
	}
	if pw != "hunter2" {
		t.Errorf("pw = %q; want hunter2", pw)
	}
}

func TestResolvePassphraseEnvMissing(t *testing.T) {
	os.Unsetenv("SCRYPTENC_TEST_PASSPHRASE_MISSING")

	if _, err := ResolvePassphrase("env", "SCRYPTENC_TEST_PASSPHRASE_MISSING", false); err == nil {
		t.Fatal("expected error for unset environment variable")
	}
}

func TestResolvePassphraseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pw.txt")
	if err := os.WriteFile(path, []byte("from-a-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	pw, err := ResolvePassphrase("file", path, false)
	if err != nil {
		t.Fatalf("ResolvePassphrase: %v", err)
	}
	if pw != "from-a-file" {
		t.Errorf("pw = %q; want %q", pw, "from-a-file")
	}
}

func TestResolvePassphraseFileMissing(t *testing.T) {
	if _, err := ResolvePassphrase("file", "/nonexistent/path/pw.txt", false); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolvePassphraseUnknownMethod(t *testing.T) {
	if _, err := ResolvePassphrase("bogus", "", false); err == nil {
		t.Fatal("expected error for unknown method")
	}
}
