package search

// Page describes one window of a result set.
type Page struct {
	Number  int // 1-based, clamped into [1, Total]
	Total   int // total page count, at least 1
	Start   int // half-open slice window [Start, End)
	End     int
	Results int // total result count across all pages
	PerPage int
}

// Paginate clamps a requested 1-based page into range and computes its
// slice window. total == 0 yields a single empty page.
func Paginate(total, page, perPage int) Page {
	if perPage <= 0 {
		perPage = 1
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Page{
		Number:  page,
		Total:   totalPages,
		Start:   start,
		End:     end,
		Results: total,
		PerPage: perPage,
	}
}

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool { return p.Number < p.Total }

// ShowingFrom is the 1-based index of the first result on the page,
// zero when the page is empty.
func (p Page) ShowingFrom() int {
	if p.Results == 0 {
		return 0
	}
	return p.Start + 1
}

// ShowingTo is the 1-based index of the last result on the page.
func (p Page) ShowingTo() int { return p.End }
