package tui

// Screen Layout Constants
// Rows are counted from the top of the terminal, offsets from the bottom

const (
	// Frame rows
	TitleRow         = 1 // title line
	BodyTopRow       = 3 // first body row
	BodyBottomOffset = 3 // last body row is height - 3
	HelpRowOffset    = 2 // help line is height - 2

	// Editor field is at most width - EditorWidthMargin cells
	EditorWidthMargin = 10

	// Pager rows shown: height - PagerHeightOffset (title, header, help and gaps)
	PagerHeightOffset = 6
)
