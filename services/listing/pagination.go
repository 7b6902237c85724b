package listing

import "fmt"

// maxPageButtons is how many numbered buttons the pager shows before an ellipsis.
const maxPageButtons = 3

// PageWindow is the numbered part of the pager.
type PageWindow struct {
	Numbers  []int `json:"numbers"`
	Ellipsis bool  `json:"ellipsis"`
	Last     int   `json:"last"`
}

// Window returns up to three page numbers around current, plus an ellipsis when
// there are more than three pages.
func Window(current, pages int) PageWindow {
	if pages < 1 {
		return PageWindow{Numbers: []int{}}
	}
	current = ClampPage(current, pages)

	start := current - 1
	if start > pages-maxPageButtons+1 {
		start = pages - maxPageButtons + 1
	}
	if start < 1 {
		start = 1
	}
	end := start + maxPageButtons - 1
	if end > pages {
		end = pages
	}

	nums := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		nums = append(nums, p)
	}
	return PageWindow{Numbers: nums, Ellipsis: pages > maxPageButtons, Last: pages}
}

// ClampPage forces a requested page into [1, pages]. With no pages the answer is 1.
func ClampPage(page, pages int) int {
	if pages < 1 || page < 1 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}

// Summary renders "first–last of total" for the rows on page.
func Summary(page, limit, count, total int) string {
	if count == 0 || total == 0 {
		return fmt.Sprintf("0 of %d", total)
	}
	if page < 1 {
		page = 1
	}
	first := (page-1)*limit + 1
	last := first + count - 1
	return fmt.Sprintf("%d–%d of %d", first, last, total)
}
