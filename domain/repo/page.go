package repo

// PageRequest is 0-based page addressing: page × size mapped onto
// offset/limit. Deep pages pay O(offset); use cursor pagination for
// those.
type PageRequest struct {
	Page uint64
	Size uint64
}

func NewPageRequest(page, size uint64) PageRequest {
	if size == 0 {
		size = 20
	}
	return PageRequest{Page: page, Size: size}
}

func (p PageRequest) Offset() uint64 { return p.Page * p.Size }
func (p PageRequest) Limit() uint64  { return p.Size }

func (p PageRequest) Next() PageRequest {
	return PageRequest{Page: p.Page + 1, Size: p.Size}
}

func (p PageRequest) Prev() (PageRequest, bool) {
	if p.Page == 0 {
		return p, false
	}
	return PageRequest{Page: p.Page - 1, Size: p.Size}, true
}

// PageResult is one page of content plus totals.
type PageResult[T any] struct {
	Content       []T
	TotalElements uint64
	Page          uint64
	PageSize      uint64
}

func NewPageResult[T any](content []T, total uint64, req PageRequest) PageResult[T] {
	return PageResult[T]{Content: content, TotalElements: total, Page: req.Page, PageSize: req.Size}
}

func (r PageResult[T]) TotalPages() uint64 {
	if r.PageSize == 0 {
		return 0
	}
	return (r.TotalElements + r.PageSize - 1) / r.PageSize
}

func (r PageResult[T]) HasNext() bool {
	return r.Page+1 < r.TotalPages()
}

func (r PageResult[T]) HasPrev() bool {
	return r.Page > 0
}
