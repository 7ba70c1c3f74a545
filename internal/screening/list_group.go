package screening

// Origin source constants
const (
	OriginSourceCustomer = "CUSTOMER"
	OriginSourceFIU      = "FIU"
	OriginSourceNBKR     = "NBKR"
	OriginSourceCourt    = "COURT"
	OriginSourceCompany  = "COMPANY"
	OriginSourceManual   = "MANUAL"
)

// ListGroupOther is the group assigned to unknown origin sources
const ListGroupOther = "OTHER"

var listGroups = map[string]string{
	OriginSourceCustomer: "INTERNAL",
	OriginSourceFIU:      "SANCTIONS",
	OriginSourceNBKR:     "REGULATORY",
	OriginSourceCourt:    "LEGAL",
	OriginSourceCompany:  "CORPORATE",
	OriginSourceManual:   "MANUAL_ENTRY",
}

// ListGroupFor derives the list group classification from an origin source
func ListGroupFor(originSource string) string {
	if group, ok := listGroups[originSource]; ok {
		return group
	}
	return ListGroupOther
}

// OriginSourceOption is a selectable origin source with its display label
type OriginSourceOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OriginSources returns the known origin sources in display order
func OriginSources() []OriginSourceOption {
	return []OriginSourceOption{
		{Value: OriginSourceCustomer, Label: "Customer"},
		{Value: OriginSourceFIU, Label: "FIU (Financial Intelligence Unit)"},
		{Value: OriginSourceNBKR, Label: "NBKR (National Bank)"},
		{Value: OriginSourceCourt, Label: "Court Decision"},
		{Value: OriginSourceCompany, Label: "Company"},
		{Value: OriginSourceManual, Label: "Manual Entry"},
	}
}
