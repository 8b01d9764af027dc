package builder

import (
	"strings"

	"mercury/internal/edi/models"
)

// invoiceSegments lays out the 810 segment sequence. Each helper is a pure
// function returning zero or more pending segments; the shape of the party
// and line-item blocks is selected by which optional sub-objects the
// extraction populated.
func invoiceSegments(data *models.TransactionData) []segment {
	var out []segment

	out = append(out, newSegment("BIG").
		set(1, data.InvoiceDate).
		set(2, data.InvoiceNumber).
		set(3, data.PODate).
		set(4, data.PONumber).
		set(7, data.TransactionTypeCode).
		set(8, data.TransactionPurpose))

	out = append(out, referenceSegments(data.References)...)

	if data.Issuer != nil {
		out = append(out, defensePartySegments(data)...)
	} else {
		out = append(out, commercialPartySegments(data)...)
	}

	out = append(out, codeListSegments(data.CodeLists)...)
	out = append(out, financialAccountingSegments(data.FinancialAccounting)...)

	for _, item := range data.Items {
		out = append(out, invoiceLineSegment(item))
	}

	out = append(out, dateSegments(data.Dates)...)

	if data.PaymentTerms != nil {
		out = append(out, paymentTermsSegment(data.PaymentTerms))
	}

	// Carrier detail takes precedence over routing info; the two are
	// mutually exclusive in the output.
	switch {
	case data.CarrierDetail != nil:
		out = append(out, newSegment("CAD").set(5, data.CarrierDetail.Routing))
	case data.CarrierInfo != nil:
		out = append(out, carrierRoutingSegment(data.CarrierInfo))
	}

	if data.SubtotalAmount != 0 {
		out = append(out, newSegment("TDS").set(1, data.SubtotalAmount))
	}

	out = append(out, serviceChargeSegments(data.ServiceCharges)...)
	out = append(out, codeListSegments(data.CodeListsPostSAC)...)

	out = append(out, newSegment("TDS").set(1, data.TotalAmount))
	out = append(out, newSegment("CTT").set(1, data.ItemCount()))

	return out
}

// defensePartySegments emits the DoD-style N1 block: bill-to flagged TO,
// issuer flagged FR, then a second issuer N1 carrying the DODAAC-qualified
// identifier. Remit-to and ship-to parties never appear in this shape.
func defensePartySegments(data *models.TransactionData) []segment {
	billTo := data.BillTo
	if billTo == nil {
		billTo = &models.Party{}
	}
	issuer := data.Issuer

	return []segment{
		newSegment("N1").
			set(1, "BT").
			set(2, billTo.Name).
			set(3, billTo.IDQualifier).
			set(4, billTo.Identifier).
			set(6, "TO"),
		newSegment("N1").
			set(1, "II").
			set(2, issuer.Name).
			set(3, issuer.IDQualifier).
			set(4, issuer.Identifier).
			set(6, "FR"),
		newSegment("N1").
			set(1, "II").
			set(3, "10").
			set(4, issuer.Identifier),
	}
}

// commercialPartySegments emits the remit-to, bill-to, and ship-to blocks.
// Each block is independently optional.
func commercialPartySegments(data *models.TransactionData) []segment {
	var out []segment

	if data.RemitTo != nil {
		out = append(out, partySegment("RE", data.RemitTo))
		out = append(out, addressSegments(data.RemitToAddress)...)
		if c := data.ContactByFunction("AP"); c != nil {
			out = append(out, contactSegment(c))
		}
	}
	if data.BillTo != nil {
		out = append(out, partySegment("BT", data.BillTo))
		out = append(out, addressSegments(data.BillToAddress)...)
		if c := data.ContactByFunction("BD"); c != nil {
			out = append(out, contactSegment(c))
		}
	}
	if data.ShipTo != nil {
		out = append(out, partySegment("ST", data.ShipTo))
		out = append(out, addressSegments(data.ShipToAddress)...)
		if c := data.ContactByFunction("SR"); c != nil {
			out = append(out, contactSegment(c))
		}
	}
	return out
}

// invoiceLineSegment picks the IT1 product-id shape for one line. First match
// wins: an NSN with no buyer part is the federal-supply shape; a buyer part
// switches to the commercial BP/VP/N4 shape; otherwise the bare item id rides
// the FS qualifier.
func invoiceLineSegment(item models.LineItem) segment {
	sg := newSegment("IT1").
		set(1, item.LineNumber).
		set(2, item.Quantity).
		set(3, item.UnitOfMeasure).
		set(4, item.UnitPrice)

	switch {
	case item.NSN != "" && item.BuyerPartNumber == "":
		// Federal supply shape: NSN rendered without dashes.
		sg = sg.set(5, "ST").
			set(6, "FS").
			set(7, strings.ReplaceAll(item.NSN, "-", ""))
	case item.BuyerPartNumber != "":
		sg = sg.set(6, "BP").set(7, item.BuyerPartNumber)
		if item.VendorPartNumber != "" {
			sg = sg.set(8, "VP").set(9, item.VendorPartNumber)
		}
		if item.NSN != "" {
			// NSN keeps its dashes under the N4 qualifier.
			sg = sg.set(10, "N4").set(11, item.NSN)
		}
	case item.ItemID != "":
		sg = sg.set(6, "FS").set(7, item.ItemID)
	}
	return sg
}

func codeListSegments(lists []models.CodeList) []segment {
	var out []segment
	for _, list := range lists {
		if len(list.Codes) == 0 {
			continue
		}
		out = append(out, newSegment("LM").
			set(1, list.AgencyCode).
			set(2, list.SourceSubqualifier))
		for _, code := range list.Codes {
			out = append(out, newSegment("LQ").
				set(1, code.Qualifier).
				set(2, code.IndustryCode))
		}
	}
	return out
}

func financialAccountingSegments(fa *models.FinancialAccounting) []segment {
	if fa == nil || len(fa.BreakdownCodes) == 0 {
		return nil
	}
	agencyCode := fa.AgencyCode
	if agencyCode == "" {
		agencyCode = "DZ"
	}
	out := []segment{newSegment("FA1").set(1, agencyCode)}
	for _, breakdown := range fa.BreakdownCodes {
		out = append(out, newSegment("FA2").
			set(1, breakdown.BreakdownCode).
			set(2, breakdown.FinancialCode))
	}
	return out
}

func paymentTermsSegment(terms *models.PaymentTerms) segment {
	termsType := terms.TermsType
	if termsType == "" {
		termsType = "01"
	}
	sg := newSegment("ITD").set(1, termsType)
	if terms.DiscountPercent != 0 {
		// Basis date code 3: discount runs from the invoice date.
		sg = sg.set(2, "3").set(3, terms.DiscountPercent)
	}
	if terms.DiscountDueDays != 0 {
		sg = sg.set(4, terms.DiscountDueDays)
	}
	if terms.NetDueDays != 0 {
		sg = sg.set(6, terms.NetDueDays)
	}
	return sg.set(7, terms.DueDate)
}

func carrierRoutingSegment(carrier *models.CarrierInfo) segment {
	routingSequence := carrier.RoutingSequence
	if routingSequence == "" {
		routingSequence = "O"
	}
	idQualifier := carrier.IDQualifier
	if idQualifier == "" {
		idQualifier = "2"
	}
	transportMethod := carrier.TransportMethod
	if transportMethod == "" {
		transportMethod = "M"
	}
	return newSegment("TD5").
		set(1, routingSequence).
		set(2, idQualifier).
		set(3, carrier.IDCode).
		set(4, transportMethod).
		set(5, carrier.Routing)
}

func serviceChargeSegments(charges []models.ServiceCharge) []segment {
	var out []segment
	for _, charge := range charges {
		sg := newSegment("SAC").
			set(1, charge.Indicator).
			set(2, charge.Code).
			set(3, charge.AgencyQualifier).
			set(4, charge.AgencyCode)
		if charge.Amount != 0 {
			sg = sg.set(5, charge.Amount)
		}
		out = append(out, sg)
	}
	return out
}

func referenceSegments(refs []models.Reference) []segment {
	var out []segment
	for _, ref := range refs {
		out = append(out, newSegment("REF").
			set(1, ref.Qualifier).
			set(2, ref.Identifier))
	}
	return out
}

func dateSegments(dates []models.DateReference) []segment {
	var out []segment
	for _, dt := range dates {
		out = append(out, newSegment("DTM").
			set(1, dt.Qualifier).
			set(2, dt.DateValue).
			set(3, dt.TimeValue))
	}
	return out
}

func partySegment(entityCode string, party *models.Party) segment {
	return newSegment("N1").
		set(1, entityCode).
		set(2, party.Name).
		set(3, party.IDQualifier).
		set(4, party.Identifier)
}

func addressSegments(addr *models.Address) []segment {
	var out []segment
	if addr.HasStreet() {
		out = append(out, newSegment("N3").
			set(1, addr.StreetLine1).
			set(2, addr.StreetLine2))
	}
	if addr.HasLocality() {
		out = append(out, newSegment("N4").
			set(1, addr.City).
			set(2, addr.State).
			set(3, addr.PostalCode).
			set(4, addr.CountryCode))
	}
	return out
}

func contactSegment(contact *models.Contact) segment {
	sg := newSegment("PER").
		set(1, contact.FunctionCode).
		set(2, contact.Name)
	pos := 3
	if contact.Phone != "" {
		sg = sg.set(pos, "TE").set(pos+1, contact.Phone)
		pos += 2
	}
	if contact.Email != "" {
		sg = sg.set(pos, "EM").set(pos+1, contact.Email)
		pos += 2
	}
	if contact.Fax != "" {
		sg = sg.set(pos, "FX").set(pos+1, contact.Fax)
	}
	return sg
}
