package data

import (
	"cmp"
	"slices"

	"github.com/iudanet/storekeeper/internal/models"
)

// CategoryStats агрегат по одной категории
type CategoryStats struct {
	Category string
	Count    int
	Total    float64
}

// PricePoint цена одного товара (ряд для графика)
type PricePoint struct {
	Name  string
	Price float64
}

// Stats сводка по товарам
type Stats struct {
	Categories []CategoryStats
	Prices     []PricePoint
	Count      int
	Min        float64
	Max        float64
	Average    float64
	Total      float64
}

// ComputeStats считает сводку. Категории отсортированы по имени,
// цены идут в порядке коллекции.
func ComputeStats(products []models.Product) Stats {
	s := Stats{
		Count:      len(products),
		Prices:     make([]PricePoint, 0, len(products)),
		Categories: []CategoryStats{},
	}
	if len(products) == 0 {
		return s
	}

	byCategory := make(map[string]*CategoryStats)
	s.Min = products[0].Price
	s.Max = products[0].Price

	for _, p := range products {
		s.Prices = append(s.Prices, PricePoint{Name: p.Name, Price: p.Price})
		s.Total += p.Price
		s.Min = min(s.Min, p.Price)
		s.Max = max(s.Max, p.Price)

		cs, ok := byCategory[p.Category]
		if !ok {
			cs = &CategoryStats{Category: p.Category}
			byCategory[p.Category] = cs
		}
		cs.Count++
		cs.Total += p.Price
	}
	s.Average = s.Total / float64(len(products))

	for _, cs := range byCategory {
		s.Categories = append(s.Categories, *cs)
	}
	slices.SortFunc(s.Categories, func(a, b CategoryStats) int {
		return cmp.Compare(a.Category, b.Category)
	})

	return s
}
