package builder

import "mercury/internal/edi/models"

// purchaseOrderSegments lays out the 850 segment sequence: the BEG opener,
// header-level terms and references, the fixed party hierarchy, then the
// PO1 detail loops and summary segments.
func purchaseOrderSegments(data *models.TransactionData) []segment {
	var out []segment

	typeCode := data.TransactionTypeCode
	if typeCode == "" {
		typeCode = "NE"
	}
	out = append(out, newSegment("BEG").
		set(1, data.TransactionPurpose).
		set(2, typeCode).
		set(3, data.PONumber).
		set(5, data.PODate))

	currency := data.Currency
	if currency == "" {
		currency = "USD"
	}
	out = append(out, newSegment("CUR").set(1, "BY").set(2, currency))

	out = append(out, referenceSegments(data.References)...)

	if data.FOBTerms != nil {
		out = append(out, newSegment("FOB").
			set(1, data.FOBTerms.ShipmentMethod).
			set(2, data.FOBTerms.LocationQualifier).
			set(3, data.FOBTerms.Description).
			set(4, data.FOBTerms.TransportationTerms))
	}

	out = append(out, serviceChargeSegments(data.ServiceCharges)...)

	if data.PaymentTerms != nil {
		out = append(out, paymentTermsSegment(data.PaymentTerms))
	}

	if data.CarrierInfo != nil {
		out = append(out, carrierRoutingSegment(data.CarrierInfo))
	}

	out = append(out, instructionSegments(data.SpecialInstructions)...)
	out = append(out, purchaseOrderPartySegments(data)...)

	for _, item := range data.Items {
		out = append(out, purchaseOrderLineSegments(item)...)
	}

	out = append(out, dateSegments(data.Dates)...)
	out = append(out, newSegment("CTT").set(1, data.ItemCount()))

	if data.TotalAmount != 0 {
		out = append(out, newSegment("AMT").set(1, "GV").set(2, data.TotalAmount))
	}

	return out
}

// purchaseOrderPartySegments walks the fixed 850 hierarchy: buyer, seller,
// bill-to, ship-to, ship-from. Each slot is independently optional and drags
// its address segments along when present.
func purchaseOrderPartySegments(data *models.TransactionData) []segment {
	hierarchy := []struct {
		entityCode string
		party      *models.Party
		address    *models.Address
	}{
		{"BY", data.Buyer, data.BuyerAddress},
		{"SE", data.Seller, data.SellerAddress},
		{"BT", data.BillTo, data.BillToAddress},
		{"ST", data.ShipTo, data.ShipToAddress},
		{"SF", data.ShipFrom, nil},
	}

	var out []segment
	for _, slot := range hierarchy {
		if slot.party == nil {
			continue
		}
		out = append(out, partySegment(slot.entityCode, slot.party))
		out = append(out, addressSegments(slot.address)...)
	}
	return out
}

// purchaseOrderLineSegments emits one PO1 plus its optional PID, PO4, and
// AMT detail. A cancelled line keeps its status elsewhere but goes out with
// quantity zero.
func purchaseOrderLineSegments(item models.LineItem) []segment {
	quantity := item.Quantity
	if item.Status == models.ItemStatusCancelled {
		quantity = 0
	}
	qualifier := item.QualifierID
	if qualifier == "" {
		qualifier = "BP"
	}
	productID := item.NSN
	if productID == "" {
		productID = item.ItemID
	}

	out := []segment{newSegment("PO1").
		set(1, item.LineNumber).
		set(2, quantity).
		set(3, item.UnitOfMeasure).
		set(4, item.UnitPrice).
		set(6, qualifier).
		set(7, productID)}

	if item.ItemDescription != "" {
		out = append(out, newSegment("PID").
			set(1, "F").
			set(5, item.ItemDescription))
	}
	if item.PackSize != 0 {
		out = append(out, newSegment("PO4").set(1, item.PackSize))
	}
	if item.ExtendedAmount != 0 {
		out = append(out, newSegment("AMT").set(1, "1").set(2, item.ExtendedAmount))
	}
	return out
}

func instructionSegments(instructions []models.SpecialInstruction) []segment {
	var out []segment
	for _, instruction := range instructions {
		qualifier := instruction.ReferenceQualifier
		if qualifier == "" {
			qualifier = "L1"
		}
		out = append(out, newSegment("N9").
			set(1, qualifier).
			set(2, instruction.ReferenceID))
		for _, message := range instruction.Messages {
			out = append(out, newSegment("MTX").set(2, message))
		}
	}
	return out
}
