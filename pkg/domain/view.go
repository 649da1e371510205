package domain

// CellState is the visual state of one box.
type CellState string

const (
	CellClosed CellState = "closed"
	CellOpen   CellState = "open"
	CellBomb   CellState = "bomb"
)

// BannerKind classifies a banner message.
type BannerKind string

const (
	BannerWarning BannerKind = "warning"
	BannerWin     BannerKind = "win"
	BannerLose    BannerKind = "lose"
)

// Banner is a one-line message above or below the control.
type Banner struct {
	Kind BannerKind `json:"kind"`
	Text string     `json:"text"`
}

// Control describes the continuous selection slider.
type Control struct {
	Min     int    `json:"min"`
	Max     int    `json:"max"`
	Value   int    `json:"value"`
	Enabled bool   `json:"enabled"`
	Label   string `json:"label"`
}

// Button describes the commit action.
type Button struct {
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
}

// Row is one line of a choice list (lottery method).
type Row struct {
	Index   int      `json:"index"`
	Label   string   `json:"label"`
	Options []string `json:"options"`
	Chosen  Choice   `json:"chosen,omitempty"`
}

// View is the declarative instruction set a rendering surface draws.
type View struct {
	ID          string      `json:"id"`
	Method      string      `json:"method"`
	Title       string      `json:"title,omitempty"`
	MainText    string      `json:"mainText"`
	Cells       []CellState `json:"cells,omitempty"`
	Rows        []Row       `json:"rows,omitempty"`
	Control     Control     `json:"control"`
	Button      Button      `json:"button"`
	Banner      *Banner     `json:"banner,omitempty"`
	Enabled     bool        `json:"enabled"`
	Highlighted bool        `json:"highlighted"`
	Committed   bool        `json:"committed"`
}

// OpenCount returns how many cells are drawn open or revealed inside the selection.
func (v View) OpenCount() int {
	n := 0
	for _, c := range v.Cells {
		if c == CellOpen {
			n++
		}
	}
	return n
}
