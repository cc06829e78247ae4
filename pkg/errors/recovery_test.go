package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestRecover(t *testing.T) {
	tests := []struct {
		name       string
		panicValue interface{}
		want       string
	}{
		{"string", "index out of range", "panic in Inverse: index out of range"},
		{"int", 42, "panic in Inverse: 42"},
		{"error", fmt.Errorf("bad row"), "panic in Inverse: bad row"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := func() (err error) {
				defer Recover(&err, "Inverse")
				panic(tt.panicValue)
			}

			err := fn()
			if err == nil {
				t.Fatal("expected error from recovered panic")
			}

			var panicErr *PanicError
			if !As(err, &panicErr) {
				t.Fatalf("expected *PanicError, got %T", err)
			}
			if panicErr.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", panicErr.Error(), tt.want)
			}
			if !strings.Contains(panicErr.String(), "Stack trace:") {
				t.Error("String() should include the stack trace")
			}
		})
	}
}

func TestRecover_NoPanic(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err, "Multiply")
		return nil
	}
	if err := fn(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestRecover_KeepsExistingError(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err, "Fit")
		err = ErrEmptyData
		panic("late panic")
	}

	err := fn()
	if !Is(err, ErrEmptyData) {
		t.Errorf("expected chain to contain ErrEmptyData, got %v", err)
	}
	if !strings.Contains(err.Error(), "panic in Fit: late panic") {
		t.Errorf("expected panic context in %q", err.Error())
	}
}

func TestSafeExecute(t *testing.T) {
	if err := SafeExecute("ok", func() error { return nil }); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	sentinel := fmt.Errorf("plain failure")
	if err := SafeExecute("fail", func() error { return sentinel }); err != sentinel {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	err := SafeExecute("boom", func() error { panic("boom") })
	var panicErr *PanicError
	if !As(err, &panicErr) {
		t.Fatalf("expected *PanicError, got %T", err)
	}
	if panicErr.Operation != "boom" {
		t.Errorf("Operation = %q, want boom", panicErr.Operation)
	}
}

func BenchmarkRecover_NoPanic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		func() (err error) {
			defer Recover(&err, "BenchmarkOp")
			return nil
		}()
	}
}
