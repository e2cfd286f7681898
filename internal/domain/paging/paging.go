package paging

type Link struct {
	Page     int  `json:"page,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

type Page[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalItems int    `json:"totalItems"`
	TotalPages int    `json:"totalPages"`
	FirstIndex int    `json:"firstIndex"`
	LastIndex  int    `json:"lastIndex"`
	HasPrev    bool   `json:"hasPrev"`
	HasNext    bool   `json:"hasNext"`
	PrevPage   int    `json:"prevPage"`
	NextPage   int    `json:"nextPage"`
	Links      []Link `json:"links"`
}

// TotalPages is ceil(count/pageSize) with a floor of one page, so an empty
// collection still renders as a single empty page.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Clamp keeps page inside [1, total].
func Clamp(page, total int) int {
	if total < 1 {
		total = 1
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// Next and Prev return the neighbouring page, or page itself at either end.
func Next(page, total int) int { return Clamp(page+1, total) }

func Prev(page, total int) int { return Clamp(page-1, total) }

// Paginate slices records into the requested page. Out of range pages are
// clamped rather than rejected.
func Paginate[T any](records []T, pageSize, page int) Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	count := len(records)
	total := TotalPages(count, pageSize)
	page = Clamp(page, total)

	start := (page - 1) * pageSize
	end := min(start+pageSize, count)
	items := make([]T, 0, end-start)
	items = append(items, records[start:end]...)

	out := Page[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: count,
		TotalPages: total,
		PrevPage:   Prev(page, total),
		NextPage:   Next(page, total),
		Links:      Links(page, total),
	}
	out.HasPrev = out.PrevPage != page
	out.HasNext = out.NextPage != page
	if count > 0 {
		out.FirstIndex = start + 1
		out.LastIndex = end
	}
	return out
}

// Links lists the page links to render: first, last, current and its
// neighbours. Skipped ranges collapse into a single ellipsis marker. A single
// page renders no links at all.
func Links(current, total int) []Link {
	if total <= 1 {
		return []Link{}
	}
	current = Clamp(current, total)
	links := make([]Link, 0, 7)
	for p := 1; p <= total; p++ {
		switch {
		case p == 1 || p == total || p == current || p == current-1 || p == current+1:
			links = append(links, Link{Page: p, Current: p == current})
		case (p == 2 && current > 3) || (p == total-1 && current < total-2):
			links = append(links, Link{Ellipsis: true})
		}
	}
	return links
}
