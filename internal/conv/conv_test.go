package conv

import "testing"

func TestIntToUint32(t *testing.T) {
	if got := IntToUint32(0); got != 0 {
		t.Fatalf("IntToUint32(0) = %d, want 0", got)
	}
	if got := IntToUint32(12345); got != 12345 {
		t.Fatalf("IntToUint32(12345) = %d, want 12345", got)
	}
}

func TestIntToUint32PanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("IntToUint32(-1) did not panic")
		}
	}()
	IntToUint32(-1)
}
