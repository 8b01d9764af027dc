package models

// Transaction set identifiers this engine can build.
const (
	TransactionSetInvoice       = "810"
	TransactionSetPurchaseOrder = "850"
)

// Line item status values. Cancelled lines keep their status but are emitted
// with zero quantity on PO1.
const (
	ItemStatusActive      = "ACTIVE"
	ItemStatusCancelled   = "CANCELLED"
	ItemStatusBackordered = "BACKORDERED"
)

// LineItem is one invoice or purchase order line (IT1/PO1 plus the optional
// PID/PO4/AMT detail segments).
type LineItem struct {
	LineNumber       int     `json:"line_number,omitempty"`
	Quantity         float64 `json:"quantity,omitempty"`
	UnitOfMeasure    string  `json:"unit_of_measure,omitempty"`
	UnitPrice        float64 `json:"unit_price,omitempty"`
	ItemID           string  `json:"item_id,omitempty"`
	ItemDescription  string  `json:"item_description,omitempty"`
	Status           string  `json:"status,omitempty"`
	QualifierID      string  `json:"product_id_qualifier,omitempty"`
	NSN              string  `json:"nsn,omitempty"`
	VendorPartNumber string  `json:"vendor_part_number,omitempty"`
	BuyerPartNumber  string  `json:"buyer_part_number,omitempty"`
	ExtendedAmount   float64 `json:"extended_amount,omitempty"`
	PackSize         int     `json:"pack_size,omitempty"`
}

// Party identifies one N1 loop participant.
type Party struct {
	EntityCode  string `json:"entity_code,omitempty"`
	Name        string `json:"name,omitempty"`
	IDQualifier string `json:"id_qualifier,omitempty"`
	Identifier  string `json:"identifier,omitempty"`
}

// Contact is a PER segment contact, keyed by function code (AP, BD, SR).
type Contact struct {
	FunctionCode string `json:"function_code"`
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Fax          string `json:"fax,omitempty"`
}

// Address carries N3/N4 data for a party.
type Address struct {
	StreetLine1 string `json:"street_line_1,omitempty"`
	StreetLine2 string `json:"street_line_2,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

// HasStreet reports whether the address has any N3 content.
func (a *Address) HasStreet() bool {
	return a != nil && (a.StreetLine1 != "" || a.StreetLine2 != "")
}

// HasLocality reports whether the address has any N4 content.
func (a *Address) HasLocality() bool {
	return a != nil && (a.City != "" || a.State != "" || a.PostalCode != "")
}

// DateReference is one DTM entry.
type DateReference struct {
	Qualifier string `json:"qualifier"`
	DateValue string `json:"date_value,omitempty"`
	TimeValue string `json:"time_value,omitempty"`
}

// Reference is one REF (or N9) entry.
type Reference struct {
	Qualifier   string `json:"qualifier"`
	Identifier  string `json:"identifier,omitempty"`
	Description string `json:"description,omitempty"`
}

// CodePair is one LQ entry within a code list.
type CodePair struct {
	Qualifier    string `json:"qualifier,omitempty"`
	IndustryCode string `json:"industry_code,omitempty"`
}

// CodeList is one LM/LQ block.
type CodeList struct {
	AgencyCode         string     `json:"agency_code"`
	SourceSubqualifier string     `json:"source_subqualifier,omitempty"`
	Codes              []CodePair `json:"codes,omitempty"`
}

// FinancialBreakdown is one FA2 entry.
type FinancialBreakdown struct {
	BreakdownCode string `json:"breakdown_code"`
	FinancialCode string `json:"financial_code"`
}

// FinancialAccounting carries the FA1/FA2 block.
type FinancialAccounting struct {
	AgencyCode     string               `json:"agency_code,omitempty"`
	BreakdownCodes []FinancialBreakdown `json:"breakdown_codes,omitempty"`
}

// CarrierDetail carries the DoD-pattern CAD data (routing only).
type CarrierDetail struct {
	TransportMethod  string `json:"transport_method,omitempty"`
	EquipmentInitial string `json:"equipment_initial,omitempty"`
	EquipmentNumber  string `json:"equipment_number,omitempty"`
	SCAC             string `json:"scac,omitempty"`
	Routing          string `json:"routing,omitempty"`
}

// CarrierInfo carries TD5 routing data.
type CarrierInfo struct {
	RoutingSequence string `json:"routing_sequence,omitempty"`
	IDQualifier     string `json:"id_qualifier,omitempty"`
	IDCode          string `json:"id_code,omitempty"`
	TransportMethod string `json:"transport_method,omitempty"`
	Routing         string `json:"routing,omitempty"`
}

// ServiceCharge is one SAC entry.
type ServiceCharge struct {
	Indicator       string  `json:"indicator"`
	Code            string  `json:"code,omitempty"`
	AgencyQualifier string  `json:"agency_qualifier,omitempty"`
	AgencyCode      string  `json:"agency_code,omitempty"`
	Amount          float64 `json:"amount,omitempty"`
}

// PaymentTerms carries the ITD segment data.
type PaymentTerms struct {
	TermsType       string  `json:"terms_type,omitempty"`
	DiscountPercent float64 `json:"discount_percent,omitempty"`
	DiscountDueDays int     `json:"discount_due_days,omitempty"`
	NetDueDays      int     `json:"net_due_days,omitempty"`
	DueDate         string  `json:"due_date,omitempty"`
}

// FOBTerms carries FOB shipping terms.
type FOBTerms struct {
	ShipmentMethod      string `json:"shipment_method,omitempty"`
	LocationQualifier   string `json:"location_qualifier,omitempty"`
	Description         string `json:"description,omitempty"`
	TransportationTerms string `json:"transportation_terms,omitempty"`
}

// SpecialInstruction is one N9/MTX block.
type SpecialInstruction struct {
	ReferenceQualifier string   `json:"reference_qualifier,omitempty"`
	ReferenceID        string   `json:"reference_id,omitempty"`
	Messages           []string `json:"messages,omitempty"`
}

// TransactionData is the structured transaction produced by the extraction
// collaborator. The build core treats it as read-only input; it owns no
// behavior beyond presence accessors.
type TransactionData struct {
	TransactionType     string `json:"transaction_type,omitempty"`
	TransactionPurpose  string `json:"transaction_purpose,omitempty"`
	TransactionTypeCode string `json:"transaction_type_code,omitempty"`
	PONumber            string `json:"po_number,omitempty"`
	PODate              string `json:"po_date,omitempty"`
	InvoiceNumber       string `json:"invoice_number,omitempty"`
	InvoiceDate         string `json:"invoice_date,omitempty"`
	Currency            string `json:"currency,omitempty"`

	Buyer   *Party `json:"buyer,omitempty"`
	Seller  *Party `json:"seller,omitempty"`
	RemitTo *Party `json:"remit_to,omitempty"`
	Issuer  *Party `json:"issuer,omitempty"`
	BillTo  *Party `json:"bill_to,omitempty"`
	ShipTo  *Party `json:"ship_to,omitempty"`
	ShipFrom *Party `json:"ship_from,omitempty"`

	BuyerAddress   *Address `json:"buyer_address,omitempty"`
	SellerAddress  *Address `json:"seller_address,omitempty"`
	RemitToAddress *Address `json:"remit_to_address,omitempty"`
	BillToAddress  *Address `json:"bill_to_address,omitempty"`
	ShipToAddress  *Address `json:"ship_to_address,omitempty"`

	Contacts []Contact `json:"contacts,omitempty"`

	Items []LineItem `json:"items,omitempty"`

	References []Reference     `json:"references,omitempty"`
	Dates      []DateReference `json:"dates,omitempty"`

	CodeLists        []CodeList `json:"code_lists,omitempty"`
	CodeListsPostSAC []CodeList `json:"code_lists_post_sac,omitempty"`

	FinancialAccounting *FinancialAccounting `json:"financial_accounting,omitempty"`
	PaymentTerms        *PaymentTerms        `json:"payment_terms,omitempty"`
	CarrierInfo         *CarrierInfo         `json:"carrier_info,omitempty"`
	CarrierDetail       *CarrierDetail       `json:"carrier_detail,omitempty"`
	FOBTerms            *FOBTerms            `json:"fob_terms,omitempty"`

	SpecialInstructions []SpecialInstruction `json:"special_instructions,omitempty"`
	ServiceCharges      []ServiceCharge      `json:"service_charges,omitempty"`

	SubtotalAmount float64 `json:"subtotal_amount,omitempty"`
	TotalAmount    float64 `json:"total_amount,omitempty"`
	LineItemCount  int     `json:"number_of_line_items,omitempty"`

	ConfidenceScore float64 `json:"confidence_score,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

// ContactByFunction returns the first contact with the given PER function
// code, or nil.
func (t *TransactionData) ContactByFunction(code string) *Contact {
	for i := range t.Contacts {
		if t.Contacts[i].FunctionCode == code {
			return &t.Contacts[i]
		}
	}
	return nil
}

// ItemCount returns the declared line item count, falling back to the actual
// number of extracted items.
func (t *TransactionData) ItemCount() int {
	if t.LineItemCount > 0 {
		return t.LineItemCount
	}
	return len(t.Items)
}
