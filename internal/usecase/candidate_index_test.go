package usecase

import (
	"testing"

	"github.com/fragancia/backend/internal/domain"
)

func TestBuildCandidateIndex(t *testing.T) {
	t.Run("indexes products by canonical name and gender", func(t *testing.T) {
		idx := BuildCandidateIndex([]domain.CatalogProduct{
			{ID: "p1", Name: "Sauvage (Dior)", Gender: domain.GenderMasculino},
			{ID: "p2", Name: "Good Girl", Gender: domain.GenderFemenino},
		}, nil)

		if idx.Size() != 2 {
			t.Fatalf("Size() = %d, want 2", idx.Size())
		}

		id, ok := idx.exactByNameGender[nameGenderKey{"sauvage (dior)", domain.GenderMasculino}]
		if !ok || id != "p1" {
			t.Errorf("exact lookup = (%q, %v), want (p1, true)", id, ok)
		}
	})

	t.Run("same name across genders stays unambiguous per gender", func(t *testing.T) {
		idx := BuildCandidateIndex([]domain.CatalogProduct{
			{ID: "p1", Name: "212 Sexy", Gender: domain.GenderMasculino},
			{ID: "p2", Name: "212 Sexy", Gender: domain.GenderFemenino},
		}, nil)

		if id := idx.exactByNameGender[nameGenderKey{"212 sexy", domain.GenderMasculino}]; id != "p1" {
			t.Errorf("masculino lookup = %q, want p1", id)
		}
		if id := idx.exactByNameGender[nameGenderKey{"212 sexy", domain.GenderFemenino}]; id != "p2" {
			t.Errorf("femenino lookup = %q, want p2", id)
		}
		if id := idx.byName["212 sexy"]; id != ambiguousProductID {
			t.Errorf("gender-agnostic lookup = %q, want ambiguity sentinel", id)
		}
	})

	t.Run("duplicate name and gender keeps the last product", func(t *testing.T) {
		idx := BuildCandidateIndex([]domain.CatalogProduct{
			{ID: "p1", Name: "Eros", Gender: domain.GenderMasculino},
			{ID: "p2", Name: "Eros", Gender: domain.GenderMasculino},
		}, nil)

		if id := idx.exactByNameGender[nameGenderKey{"eros", domain.GenderMasculino}]; id != "p2" {
			t.Errorf("duplicate lookup = %q, want p2 (last wins)", id)
		}
	})

	t.Run("aliases resolve with the product's gender", func(t *testing.T) {
		idx := BuildCandidateIndex([]domain.CatalogProduct{
			{ID: "p1", Name: "One Million", Gender: domain.GenderMasculino},
		}, []domain.AliasEntry{
			{ProductID: "p1", Alias: "1 Million"},
			{ProductID: "missing", Alias: "Ghost Alias"},
		})

		id, ok := idx.exactByAliasGender[nameGenderKey{"1 million", domain.GenderMasculino}]
		if !ok || id != "p1" {
			t.Errorf("alias lookup = (%q, %v), want (p1, true)", id, ok)
		}
		if _, ok := idx.exactByAliasGender[nameGenderKey{"ghost alias", domain.GenderUnknown}]; ok {
			t.Error("alias for out-of-scope product should be skipped")
		}
	})

	t.Run("groups products by main title and brand", func(t *testing.T) {
		idx := BuildCandidateIndex([]domain.CatalogProduct{
			{ID: "p1", Name: "Sauvage", Gender: domain.GenderMasculino},
			{ID: "p2", Name: "Sauvage (Dior)", Gender: domain.GenderMasculino},
		}, nil)

		// Both resolve to main title "sauvage" with brand "dior": the bare
		// name through the line lookup, the other through its parenthetical.
		group := idx.byTitleBrand[titleBrandKey{"sauvage", "dior"}]
		if len(group) != 2 {
			t.Errorf("title-brand group size = %d, want 2", len(group))
		}
	})
}
