package log

import "testing"

func TestNopLoggerDoesNotPanic(t *testing.T) {
	l := Nop()
	l.Debug("debug", String("k", "v"))
	l.Info("info", Int("n", 1))
	l.Warn("warn", Err(nil))
	l.Error("error")
	_ = l.WithFields(String("a", "b")).WithFields(Uint32("c", 2))
}

func TestSetVerboseIsIdempotentOnWrongType(t *testing.T) {
	// SetVerbose should be a no-op (not panic) for any Logger implementation.
	wrapped := struct{ Logger }{Nop()}
	SetVerbose(wrapped, true)
	SetVerbose(wrapped, false)
}

func TestFieldConstructors(t *testing.T) {
	if f := String("k", "v"); f.Key != "k" || f.Value != "v" {
		t.Errorf("String field = %+v", f)
	}
	if f := Err(nil); f.Value != nil {
		t.Errorf("Err(nil).Value = %v; want nil", f.Value)
	}
}
