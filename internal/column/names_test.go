package column

import "testing"

func TestDefaultName(t *testing.T) {
	tests := []struct {
		i    int
		want string
	}{
		{0, "A"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, tt := range tests {
		if got := DefaultName(tt.i); got != tt.want {
			t.Errorf("DefaultName(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}
