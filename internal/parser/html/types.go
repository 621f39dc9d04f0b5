package html

// Region is the body of a <style> element found in an HTML or Vue document
type Region struct {
	Content string
	// Start is the byte offset of Content in the host document
	Start     int
	StartLine uint
	StartCol  uint
	// Lang is the element's lang attribute, or "" when absent
	Lang string
}

// End returns the byte offset just past the region in the host document
func (r Region) End() int {
	return r.Start + len(r.Content)
}

// Contains reports whether a host document offset falls inside the region.
// The end is inclusive so a cursor after the last character still matches.
func (r Region) Contains(offset int) bool {
	return offset >= r.Start && offset <= r.End()
}

// IsSCSS reports whether the region holds SCSS. Plain CSS is valid SCSS,
// so only foreign languages such as less or stylus are excluded.
func (r Region) IsSCSS() bool {
	switch r.Lang {
	case "", "css", "scss":
		return true
	}
	return false
}
