package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutPriceWidth is the minimum width to show the price column.
	LayoutPriceWidth = 60
)

// Chrome sizes.
const (
	headerLines = 2 // status bar and command bar
	footerLines = 1 // message line
	boxBorders  = 2

	// minBoxWidth keeps titled boxes drawable on tiny terminals.
	minBoxWidth = 20
)
