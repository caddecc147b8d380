package jsonutil

import "testing"

func TestUintSliceToJSONArray(t *testing.T) {
	tests := []struct {
		name string
		ids  []uint
		want string
	}{
		{name: "nil slice", ids: nil, want: "[]"},
		{name: "empty slice", ids: []uint{}, want: "[]"},
		{name: "single id", ids: []uint{7}, want: "[7]"},
		{name: "several ids keep order", ids: []uint{3, 1, 2}, want: "[3,1,2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UintSliceToJSONArray(tt.ids); got != tt.want {
				t.Errorf("UintSliceToJSONArray(%v) = %q, want %q", tt.ids, got, tt.want)
			}
		})
	}
}
