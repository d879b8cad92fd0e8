package usecase

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDiceSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{
			name: "identical strings",
			a:    "sauvage",
			b:    "sauvage",
			want: 1,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: 0,
		},
		{
			name: "no shared bigrams",
			a:    "abc",
			b:    "xyz",
			want: 0,
		},
		{
			name: "partial overlap",
			// "good girl" has 8 bigrams, "good girl suprema" has 16,
			// all 8 shared: 2*8/(8+16)
			a:    "good girl",
			b:    "good girl suprema",
			want: 2.0 * 8 / 24,
		},
		{
			name: "repeated bigrams counted as multiset",
			// "aaaa" = {aa:3}, "aa" = {aa:1}, overlap 1: 2*1/(3+1)
			a:    "aaaa",
			b:    "aa",
			want: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiceSimilarity(tt.a, tt.b)
			if !almostEqual(got, tt.want) {
				t.Errorf("DiceSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDiceSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"good girl", "good girl suprema"},
		{"sauvage", "sauvage elixir"},
		{"invictus", "invictus victory"},
	}
	for _, p := range pairs {
		ab := DiceSimilarity(p[0], p[1])
		ba := DiceSimilarity(p[1], p[0])
		if !almostEqual(ab, ba) {
			t.Errorf("DiceSimilarity not symmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
	}
}

func TestTitleSimilarity(t *testing.T) {
	t.Run("identical titles with agreeing brands score 1", func(t *testing.T) {
		got := TitleSimilarity("Invictus (Paco Rabanne)", "Invictus PACO RABANNE")
		if !almostEqual(got, 1) {
			t.Errorf("TitleSimilarity = %v, want 1", got)
		}
	})

	t.Run("brand agreement adds a flat bonus", func(t *testing.T) {
		base := DiceSimilarity("good girl", "good girl suprema")
		got := TitleSimilarity("Good Girl (Carolina Herrera)", "Good Girl Suprema (Carolina Herrera)")
		if !almostEqual(got, base+brandAgreementBonus) {
			t.Errorf("TitleSimilarity = %v, want %v", got, base+brandAgreementBonus)
		}
	})

	t.Run("missing strong token caps the score", func(t *testing.T) {
		// Near-identical strings, but the candidate lacks the source's
		// strong token "legion". Raw Dice exceeds the cap.
		got := TitleSimilarity("Phantom Legion", "Phantom Legio")
		if !almostEqual(got, missingStrongTokenCap) {
			t.Errorf("TitleSimilarity = %v, want cap %v", got, missingStrongTokenCap)
		}
	})

	t.Run("disagreeing brands get no bonus", func(t *testing.T) {
		base := DiceSimilarity("good girl", "good girl suprema")
		got := TitleSimilarity("Good Girl (Zara)", "Good Girl Suprema (Carolina Herrera)")
		if !almostEqual(got, base) {
			t.Errorf("TitleSimilarity = %v, want %v without bonus", got, base)
		}
	})
}

func TestBrandsClose(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{"equal", "dior", "dior", true},
		{"near spelling", "carolina herrera", "carolina herera", true},
		{"different houses", "dior", "versace", false},
		{"empty candidate", "dior", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := brandsClose(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("brandsClose(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
