package crawl

// Frontier is a FIFO queue of URLs waiting to be crawled.
// It does not deduplicate: a URL queued twice is popped twice and the
// second pop is skipped by the visited check.
type Frontier struct {
	queue []string
	head  int
}

// NewFrontier creates a frontier seeded with the given URLs.
func NewFrontier(urls ...string) *Frontier {
	f := &Frontier{}
	for _, u := range urls {
		f.Push(u)
	}
	return f
}

// Push appends a URL to the tail.
func (f *Frontier) Push(url string) {
	f.queue = append(f.queue, url)
}

// Pop removes and returns the earliest queued URL.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	if f.head >= len(f.queue) {
		return "", false
	}
	url := f.queue[f.head]
	f.queue[f.head] = ""
	f.head++

	// Reclaim the consumed prefix once it dominates the slice.
	if f.head > 64 && f.head*2 > len(f.queue) {
		f.queue = append([]string(nil), f.queue[f.head:]...)
		f.head = 0
	}
	return url, true
}

// Len returns the number of queued URLs.
func (f *Frontier) Len() int {
	return len(f.queue) - f.head
}
