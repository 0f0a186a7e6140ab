package domain

// ViewMode is the catalog layout. Only ViewModeList and ViewModeGrid exist.
type ViewMode string

const (
	ViewModeList ViewMode = "list"
	ViewModeGrid ViewMode = "grid"
)

func ParseViewMode(s string) (ViewMode, bool) {
	switch ViewMode(s) {
	case ViewModeList, ViewModeGrid:
		return ViewMode(s), true
	}
	return "", false
}

func (m ViewMode) String() string { return string(m) }
