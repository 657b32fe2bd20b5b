package dto

type RecordInput struct {
	Date             string   `json:"date"`
	Type             string   `json:"type"`
	Note             string   `json:"note"`
	Tags             []string `json:"tags"`
	LearnedSomething bool     `json:"learnedSomething"`
}

type EntryOutput struct {
	Date             string   `json:"date"`
	Type             string   `json:"type"`
	Label            string   `json:"label"`
	Color            string   `json:"color"`
	Note             string   `json:"note"`
	Tags             []string `json:"tags"`
	LearnedSomething bool     `json:"learnedSomething"`
}

type RecordOutput struct {
	Entry     EntryOutput `json:"entry"`
	Sync      string      `json:"sync"`
	SyncError string      `json:"syncError,omitempty"`
}

type SessionOutput struct {
	Mode   string `json:"mode"`
	UserID string `json:"userId,omitempty"`
}
