package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/forest-guardian/landsat-lst/internal/landsat"
	"github.com/forest-guardian/landsat-lst/internal/metadata"
)

type Product string

const (
	NDVI  Product = "NDVI"
	MNDWI Product = "MNDWI"
	NDISI Product = "NDISI"
	LST   Product = "LST"
)

// AllProducts is also the order products are persisted in.
var AllProducts = []Product{NDVI, MNDWI, NDISI, LST}

func ParseProduct(s string) (Product, error) {
	p := Product(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllProducts {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown product %q, expected one of %v", s, AllProducts)
}

type ProductSet map[Product]struct{}

func NewProductSet(products ...Product) ProductSet {
	s := make(ProductSet, len(products))
	for _, p := range products {
		s[p] = struct{}{}
	}
	return s
}

// ParseProducts accepts names separated by ';' or ','.
func ParseProducts(s string) (ProductSet, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ','
	})
	set := make(ProductSet, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			continue
		}
		p, err := ParseProduct(f)
		if err != nil {
			return nil, err
		}
		set[p] = struct{}{}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("no products selected")
	}
	return set, nil
}

func (s ProductSet) Has(p Product) bool {
	_, ok := s[p]
	return ok
}

// Sorted returns the members in AllProducts order.
func (s ProductSet) Sorted() []Product {
	out := make([]Product, 0, len(s))
	for _, p := range AllProducts {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s ProductSet) String() string {
	names := make([]string, 0, len(s))
	for _, p := range s.Sorted() {
		names = append(names, string(p))
	}
	return strings.Join(names, ";")
}

// OutputName is {PRODUCT}_{HHMMSS}GMT_{YYYYMMDD}.
func OutputName(p Product, c *metadata.CalibrationConstants) string {
	return fmt.Sprintf("%s_%s", p, c.Stamp())
}

// RequiredBands lists the bands needed to derive products.
func RequiredBands(products ProductSet, average bool) []landsat.Band {
	need := map[landsat.Band]bool{}
	if products.Has(NDVI) || products.Has(LST) {
		need[landsat.Red], need[landsat.NIR] = true, true
	}
	if products.Has(MNDWI) || products.Has(NDISI) {
		need[landsat.Green], need[landsat.SWIR1] = true, true
	}
	if products.Has(NDISI) {
		need[landsat.NIR], need[landsat.TIRS1] = true, true
	}
	if products.Has(LST) {
		need[landsat.TIRS1] = true
		if average {
			need[landsat.TIRS2] = true
		}
	}

	bands := make([]landsat.Band, 0, len(need))
	for b := range need {
		bands = append(bands, b)
	}
	sort.Slice(bands, func(i, j int) bool { return bands[i] < bands[j] })
	return bands
}

// difference returns the members of all that are not in keep, in the order
// of all.
func difference(all []string, keep map[string]bool) []string {
	var out []string
	for _, a := range all {
		if !keep[a] {
			out = append(out, a)
		}
	}
	return out
}
