package crawl

import "github.com/fwojciec/markdownify/bloom"

// visitedFPRate is the false positive rate of the negative-lookup filter.
const visitedFPRate = 0.01

// maxVisitedHint caps the filter size so huge budgets don't preallocate.
const maxVisitedHint = 1 << 20

// VisitedSet tracks URLs that have been dequeued and processed.
// Membership is exact: the Bloom filter answers "definitely not visited"
// quickly and the map confirms every positive.
type VisitedSet struct {
	filter *bloom.Filter
	urls   map[string]struct{}
}

// NewVisitedSet creates a set sized for about n URLs.
func NewVisitedSet(n int) *VisitedSet {
	hint := n
	if hint <= 0 {
		hint = 1
	}
	if hint > maxVisitedHint {
		hint = maxVisitedHint
	}
	return &VisitedSet{
		filter: bloom.NewFilter(uint(hint), visitedFPRate),
		urls:   make(map[string]struct{}, min(hint, 1024)),
	}
}

// Add marks url as visited. It returns false if url was already present.
func (v *VisitedSet) Add(url string) bool {
	if v.Contains(url) {
		return false
	}
	v.filter.Add(url)
	v.urls[url] = struct{}{}
	return true
}

// Contains reports whether url has been visited.
func (v *VisitedSet) Contains(url string) bool {
	if !v.filter.Test(url) {
		return false
	}
	_, ok := v.urls[url]
	return ok
}

// Len returns the number of visited URLs.
func (v *VisitedSet) Len() int {
	return len(v.urls)
}
