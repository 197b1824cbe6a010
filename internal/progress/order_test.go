package progress

import "testing"

func TestNumericKey(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"Thread1", "1", true},
		{"Thread10", "10", true},
		{"w1-2", "12", true},
		{"Thread007", "7", true},
		{"99999999999999999999999", "99999999999999999999999", true},
		{"main", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			key, ok := NumericKey(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("NumericKey(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if ok && key.String() != tt.want {
				t.Errorf("NumericKey(%q) = %s, want %s", tt.name, key, tt.want)
			}
		})
	}
}

func TestLess(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b string
		want bool
	}{
		{"Thread1", "Thread2", true},
		{"Thread2", "Thread10", true},
		{"Thread10", "Thread2", false},
		{"Thread3", "main", true},
		{"main", "Thread3", false},
		{"alpha", "beta", true},
		{"A01", "B1", true},
		{"B1", "A01", false},
	}
	for _, tt := range tests {
		if got := Less(tt.a, tt.b); got != tt.want {
			t.Errorf("Less(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
