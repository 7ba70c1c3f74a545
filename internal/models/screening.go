package models

// Match type constants
const (
	MatchTypeExact   = "Exact"
	MatchTypePartial = "Partial"
)

// Coincidence is a detected match between a candidate identity and a black-list entry
type Coincidence struct {
	CustomerNo   string `json:"customer_no"`
	Name         string `json:"name"`
	MatchType    string `json:"match_type"`
	OriginSource string `json:"origin_source"`
}

// ImportedRow is a transient staging row produced by a file import.
// It is returned to the maker for selection and never persisted.
type ImportedRow struct {
	ID           string `json:"id"`
	TxNo         string `json:"tx_no"`
	CustomerNo   string `json:"customer_no"`
	Name         string `json:"name"`
	TxType       string `json:"tx_type"`
	CreateDate   string `json:"create_date"`
	CreateUser   string `json:"create_user"`
	OriginSource string `json:"origin_source"`
	ListGroup    string `json:"list_group"`
}
