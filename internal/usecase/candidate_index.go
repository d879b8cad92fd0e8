package usecase

import (
	"github.com/fragancia/backend/internal/domain"
)

// ambiguousProductID marks a normalized name shared by more than one product
// in the gender-agnostic index. Lookups must skip it rather than guess.
const ambiguousProductID = "\x00ambiguous"

type nameGenderKey struct {
	name   string
	gender domain.Gender
}

type titleBrandKey struct {
	mainTitle string
	brand     string
}

// Candidate is one catalog product as seen by the group and fuzzy lookups.
type Candidate struct {
	ID     string
	Name   string
	Gender domain.Gender
}

// CandidateIndex holds the lookup structures built once per sync run from
// one supplier's slice of the internal catalog. It is read-only after
// construction and safe to share across concurrent matchers.
type CandidateIndex struct {
	exactByNameGender  map[nameGenderKey]string
	exactByAliasGender map[nameGenderKey]string
	byName             map[string]string
	byTitleBrand       map[titleBrandKey][]Candidate
	flat               []Candidate
	products           map[string]domain.CatalogProduct
}

// BuildCandidateIndex indexes the given products and aliases. Products must
// already be scoped to the supplier being synced; aliases referencing
// products outside that scope are skipped. Duplicate (name, gender) keys
// keep the last product seen.
func BuildCandidateIndex(products []domain.CatalogProduct, aliases []domain.AliasEntry) *CandidateIndex {
	idx := &CandidateIndex{
		exactByNameGender:  make(map[nameGenderKey]string, len(products)),
		exactByAliasGender: make(map[nameGenderKey]string, len(aliases)),
		byName:             make(map[string]string, len(products)),
		byTitleBrand:       make(map[titleBrandKey][]Candidate, len(products)),
		flat:               make([]Candidate, 0, len(products)),
		products:           make(map[string]domain.CatalogProduct, len(products)),
	}

	for _, p := range products {
		name := Canonicalize(p.Name)

		idx.exactByNameGender[nameGenderKey{name, p.Gender}] = p.ID

		if prev, seen := idx.byName[name]; seen && prev != p.ID {
			idx.byName[name] = ambiguousProductID
		} else {
			idx.byName[name] = p.ID
		}

		cand := Candidate{ID: p.ID, Name: p.Name, Gender: p.Gender}
		key := titleBrandKey{MainTitle(p.Name), ExtractBrand(p.Name)}
		idx.byTitleBrand[key] = append(idx.byTitleBrand[key], cand)

		idx.flat = append(idx.flat, cand)
		idx.products[p.ID] = p
	}

	for _, a := range aliases {
		p, ok := idx.products[a.ProductID]
		if !ok {
			continue
		}
		idx.exactByAliasGender[nameGenderKey{Canonicalize(a.Alias), p.Gender}] = p.ID
	}

	return idx
}

// Product returns the indexed product for an id.
func (idx *CandidateIndex) Product(id string) (domain.CatalogProduct, bool) {
	p, ok := idx.products[id]
	return p, ok
}

// Size returns the number of indexed products.
func (idx *CandidateIndex) Size() int {
	return len(idx.flat)
}
