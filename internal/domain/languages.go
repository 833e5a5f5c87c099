package domain

import "sort"

// LanguageShare is one language's portion of a repository.
type LanguageShare struct {
	Name    string
	Bytes   int64
	Percent float64
}

// Total returns the number of bytes across all languages.
func (l Languages) Total() int64 {
	var total int64
	for _, n := range l {
		total += n
	}
	return total
}

// Shares returns the languages ordered by size, largest first. Ties are
// broken by name so the order is stable.
func (l Languages) Shares() []LanguageShare {
	total := l.Total()
	shares := make([]LanguageShare, 0, len(l))
	for name, n := range l {
		s := LanguageShare{Name: name, Bytes: n}
		if total > 0 {
			s.Percent = float64(n) * 100 / float64(total)
		}
		shares = append(shares, s)
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Bytes != shares[j].Bytes {
			return shares[i].Bytes > shares[j].Bytes
		}
		return shares[i].Name < shares[j].Name
	})
	return shares
}
