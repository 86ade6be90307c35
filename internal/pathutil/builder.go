package pathutil

import (
	"strconv"
	"strings"
)

// Locator builds field locators such as "requestBody.address.zip",
// "parameters[2]" or "requestBody.tags[].name" with push/pop semantics, so a
// recursive walk can extend and shrink one value instead of concatenating
// strings at every level.
type Locator struct {
	segments []string
}

// NewLocator starts a locator at the given root segments.
func NewLocator(root ...string) *Locator {
	l := &Locator{}
	for _, s := range root {
		l.Push(s)
	}
	return l
}

// Push adds a dotted segment.
func (l *Locator) Push(segment string) {
	l.segments = append(l.segments, segment)
}

// PushIndex adds an array index segment: "[0]", "[1]", etc.
func (l *Locator) PushIndex(i int) {
	l.segments = append(l.segments, "["+strconv.Itoa(i)+"]")
}

// PushItems adds the "[]" segment that stands for every item of an array.
func (l *Locator) PushItems() {
	l.segments = append(l.segments, "[]")
}

// Pop removes the last segment.
func (l *Locator) Pop() {
	if len(l.segments) == 0 {
		return
	}
	l.segments = l.segments[:len(l.segments)-1]
}

// Depth returns the number of segments.
func (l *Locator) Depth() int {
	return len(l.segments)
}

// String materializes the locator.
func (l *Locator) String() string {
	var b strings.Builder
	for i, seg := range l.segments {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			b.WriteByte('.')
		}
		b.WriteString(seg)
	}
	return b.String()
}
