package fonts

import "testing"

func TestFace(t *testing.T) {
	for _, w := range []Weight{Regular, Bold} {
		t.Run(w.String(), func(t *testing.T) {
			face, err := Face(w, 32)
			if err != nil {
				t.Fatalf("Face(%s, 32): %v", w, err)
			}
			defer face.Close()

			m := face.Metrics()
			if m.Height.Ceil() <= 0 {
				t.Errorf("face height = %v, want > 0", m.Height)
			}
		})
	}
}

func TestFaceIsCached(t *testing.T) {
	a, err := load(Regular)
	if err != nil {
		t.Fatal(err)
	}
	b, err := load(Regular)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("load should return the cached font on repeat calls")
	}
}

func TestParseWeight(t *testing.T) {
	tests := []struct {
		in      string
		want    Weight
		wantErr bool
	}{
		{"", Regular, false},
		{"regular", Regular, false},
		{"bold", Bold, false},
		{"italic", Regular, true},
	}
	for _, tt := range tests {
		got, err := ParseWeight(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWeight(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseWeight(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
