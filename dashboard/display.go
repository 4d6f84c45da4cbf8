package dashboard

// DisplayState selects which of the mutually exclusive main areas is shown.
type DisplayState string

const (
	DisplayLoading DisplayState = "loading"
	DisplayGrid    DisplayState = "grid"
	DisplayEmpty   DisplayState = "empty"
)

func displayFor(grid Grid) DisplayState {
	if grid.Empty() {
		return DisplayEmpty
	}
	return DisplayGrid
}
