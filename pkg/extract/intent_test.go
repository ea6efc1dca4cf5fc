package extract

import "testing"

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"yes, let's proceed", Intent{Agreement: true}},
		{"sounds good to me", Intent{Agreement: true}},
		{"not interested, maybe later", Intent{Rejection: true}},
		{"tell me more about the interest rate", Intent{WantsMoreInfo: true}},
		{"hmm", Intent{}},
	}
	for _, tt := range tests {
		if got := DetectIntent(tt.text); got != tt.want {
			t.Errorf("DetectIntent(%q) = %+v, want %+v", tt.text, got, tt.want)
		}
	}
}

func TestIntentMerge(t *testing.T) {
	base := Intent{Agreement: true}
	merged := base.Merge(Intent{WantsMoreInfo: true})

	want := Intent{Agreement: true, WantsMoreInfo: true}
	if merged != want {
		t.Errorf("Merge = %+v, want %+v", merged, want)
	}
}
