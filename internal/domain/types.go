package domain

// Params are the inputs of a new game: an N×N board with Bombs bombs.
type Params struct {
	Size  int `json:"size"`
	Bombs int `json:"bombs"`
}

// CellCoord identifies a cell on the board.
type CellCoord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Hint describes a safe deduction for the UI.
type Hint struct {
	Message string      `json:"message,omitempty"`
	Cells   []CellCoord `json:"cells,omitempty"`
	Action  Action      `json:"action"`
}

// Record is a finished game kept for the results list.
type Record struct {
	ID         string `json:"id"`
	Size       int    `json:"size"`
	Bombs      int    `json:"bombs"`
	Status     Status `json:"status"`
	Moves      int    `json:"moves"`
	Flags      int    `json:"flags"`
	StartedAt  int64  `json:"startedAt"`
	FinishedAt int64  `json:"finishedAt"`
}

// RecordMeta is a lightweight listing entry.
type RecordMeta struct {
	ID         string `json:"id"`
	Size       int    `json:"size"`
	Bombs      int    `json:"bombs"`
	Status     Status `json:"status"`
	FinishedAt int64  `json:"finishedAt"`
}
