package service

import (
	"fmt"
	"math"

	"mercury/internal/edi/models"
)

// Validate checks extracted data for completeness and logical consistency
// before segment building. Errors block the build; warnings ride along in
// the response.
func Validate(data *models.TransactionData, transactionType string) []models.Finding {
	var findings []models.Finding
	errorf := func(format string, args ...any) {
		findings = append(findings, models.Finding{Severity: models.SeverityError, Message: fmt.Sprintf(format, args...)})
	}
	warnf := func(format string, args ...any) {
		findings = append(findings, models.Finding{Severity: models.SeverityWarning, Message: fmt.Sprintf(format, args...)})
	}

	switch transactionType {
	case models.TransactionSetInvoice:
		if data.InvoiceNumber == "" {
			errorf("Missing mandatory invoice number")
		}
		if data.InvoiceDate == "" {
			errorf("Missing mandatory invoice date")
		}
	case models.TransactionSetPurchaseOrder:
		if data.PONumber == "" {
			errorf("Missing mandatory PO number")
		}
		if data.PODate == "" {
			warnf("Missing PO date (recommended)")
		}
	}

	if data.Buyer == nil && data.Seller == nil {
		warnf("No buyer or seller information found")
	}
	if transactionType == models.TransactionSetPurchaseOrder && data.Buyer == nil {
		warnf("Missing buyer information (BY party)")
	}
	if transactionType == models.TransactionSetInvoice && data.BillTo == nil {
		warnf("Missing bill-to information (BT party)")
	}

	if len(data.Items) == 0 {
		errorf("No line items found")
	} else {
		for idx, item := range data.Items {
			line := idx + 1
			if item.Quantity == 0 && item.Status != models.ItemStatusCancelled {
				errorf("Line %d missing quantity", line)
			}
			if item.UnitPrice == 0 {
				warnf("Line %d missing unit price", line)
			}
			if item.ItemID == "" && item.NSN == "" {
				warnf("Line %d missing item ID", line)
			}
		}
	}

	if data.TotalAmount != 0 && len(data.Items) > 0 {
		var calculated float64
		for _, item := range data.Items {
			if item.Status == models.ItemStatusCancelled {
				continue
			}
			calculated += item.Quantity * item.UnitPrice
		}
		if math.Abs(calculated-data.TotalAmount) > 0.01 {
			warnf("Total amount mismatch (stated: %g, calculated: %g)", data.TotalAmount, calculated)
		}
	}

	if data.ConfidenceScore != 0 && data.ConfidenceScore < 0.7 {
		warnf("Low extraction confidence (%.2f)", data.ConfidenceScore)
	}

	return findings
}
