package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type match struct {
	product Product
	rank    int // 0 substring, 1 fuzzy
	dist    int
	order   int
}

// Search returns the products whose title contains query, followed by those
// within a small edit distance of it (so typos still match). Case is ignored.
// An empty query returns every product.
func (c *Catalog) Search(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.Products()
	}

	var matches []match
	for i, p := range c.products {
		title := strings.ToLower(p.Title)
		if strings.Contains(title, q) {
			matches = append(matches, match{product: p, rank: 0, order: i})
			continue
		}
		if d := fuzzyDistance(q, title); d <= maxTypos(q) {
			matches = append(matches, match{product: p, rank: 1, dist: d, order: i})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		if a.dist != b.dist {
			return a.dist < b.dist
		}
		return a.order < b.order
	})

	out := make([]Product, len(matches))
	for i, m := range matches {
		out[i] = m.product
	}
	return out
}

// fuzzyDistance is the best distance between q and the title or any word of it.
func fuzzyDistance(q, title string) int {
	best := levenshtein.ComputeDistance(q, title)
	for _, w := range strings.Fields(title) {
		if d := levenshtein.ComputeDistance(q, w); d < best {
			best = d
		}
	}
	return best
}

func maxTypos(q string) int {
	n := len([]rune(q)) / 4
	if n < 1 {
		return 1
	}
	return n
}
