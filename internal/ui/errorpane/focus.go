package errorpane

// Insets are per-edge offsets in cells.
type Insets struct {
	Left, Top, Right, Bottom int
}

// FocusArea is the region that keyboard and rotary focus moves within.
// Padding shrinks the content, the highlight padding shrinks the focus
// highlight and the bounds offset shrinks the area used to find the next
// focus target.
type FocusArea struct {
	padding   Insets
	highlight Insets
	bounds    Insets
}

func (f *FocusArea) SetPadding(in Insets)          { f.padding = in }
func (f *FocusArea) SetHighlightPadding(in Insets) { f.highlight = in }
func (f *FocusArea) SetBoundsOffset(in Insets)     { f.bounds = in }
func (f *FocusArea) Padding() Insets               { return f.padding }
func (f *FocusArea) HighlightPadding() Insets      { return f.highlight }
func (f *FocusArea) BoundsOffset() Insets          { return f.bounds }
