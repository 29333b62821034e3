package names

import "testing"

func TestFold(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Crème Brûlée", "creme brulee"},
		{"Œuf", "œuf"},
		{"JALAPEÑO", "jalapeno"},
		{"tahini", "tahini"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Fold(tc.in); got != tc.want {
			t.Errorf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal("Béchamel", "bechamel") {
		t.Error("expected folded names to compare equal")
	}
	if Equal("bechamel", "veloute") {
		t.Error("expected distinct names to compare unequal")
	}
}
