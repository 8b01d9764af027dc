package models

// DocumentInfo is one row of the edi_info registry: the metadata a sender
// registered for a document before its text was ingested. Type names the EDI
// standard family ("EDI", "X12", "EDIFACT") and maps onto an agency code.
type DocumentInfo struct {
	InterchangeSender string `json:"interchange_sender"`
	EDIInfoID         string `json:"edi_info_id"`
	Type              string `json:"type"`
	StandardVersion   string `json:"standard_version"`
	TransactionName   string `json:"transaction_name"`
}
