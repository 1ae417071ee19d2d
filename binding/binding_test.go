package binding

import "testing"

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"user":  map[string]any{"name": "SpongeBob", "nick": ""},
		"house": map[string]string{"name": "pineapple"},
	}
	tests := []struct {
		template string
		want     string
	}{
		{"Hey great day in our house ${user.name}!", "Hey great day in our house SpongeBob!"},
		{"${house.name}", "pineapple"},
		{"${user.name.first}", "${user.name.first}"},
		{"${user.missing}", "${user.missing}"},
		{"${user.missing|friend}", "friend"},
		{"${user.nick|friend}", "friend"},
		{"${ user.name | friend }", "SpongeBob"},
		{"${}", "${}"},
		{"no placeholders", "no placeholders"},
	}
	for _, tt := range tests {
		if got := Interpolate(tt.template, data); got != tt.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}
}

func TestInterpolateNilData(t *testing.T) {
	if got := Interpolate("hi ${user.name|there}", nil); got != "hi there" {
		t.Fatalf("unexpected result %q", got)
	}
	if got := Interpolate("hi ${user.name}", nil); got != "hi ${user.name}" {
		t.Fatalf("unexpected result %q", got)
	}
}
