package domain

// Photo is one stored gallery entry. The JSON field names are the persisted
// wire format of the photo list and must not change.
type Photo struct {
	FileName string `json:"fileName"`
	WebPath  string `json:"webPath"`
	Date     string `json:"date"`
}
