package donation

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// GenerateReceiptPDF renders the printable receipt for a completed order.
func GenerateReceiptPDF(order *Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, "Shree Durga Pooja Jan Seva Samiti", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 6, "Manpur, Gaya, Bihar", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, "Donation Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 6, "Receipt No: "+order.ReceiptNo, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Date: "+order.CreatedAt.Format("02 Jan 2006"), "", 1, "R", false, 0, "")
	pdf.CellFormat(95, 6, "Donor: "+order.DonorName, "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Payment: "+order.Method, "", 1, "R", false, 0, "")
	pdf.Ln(6)

	widths := []float64{70, 30, 20, 35, 35}
	headers := []string{"Category", "Rate", "Qty", "Amount", "Weight (kg)"}

	pdf.SetFont("Arial", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, item := range order.Items {
		pdf.CellFormat(widths[0], 6, item.CategoryName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%.2f", item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.2f", item.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%.3f", item.TotalWeight), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 6, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.2f", order.TotalAmount), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[4], 6, fmt.Sprintf("%.3f", order.TotalWeight), "1", 1, "R", false, 0, "")

	if order.CourierCharge > 0 {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(widths[0]+widths[1]+widths[2], 6, "Courier Charge ("+string(order.Region)+")", "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.2f", order.CourierCharge), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, "", "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 7, "Net Payable", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3]+widths[4], 7, fmt.Sprintf("Rs. %.2f", order.NetPayable), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "I", 10)
	pdf.MultiCell(0, 6, "Amount in words: "+order.AmountInWords, "", "L", false)
	if order.PacketCount > 0 {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Prasad packets: %d", order.PacketCount), "", 1, "L", false, 0, "")
	}
	if order.Delivery == DeliveryCourier && order.DeliveryAddress != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, "Ship to: "+order.DeliveryAddress, "", "L", false)
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, "This is a computer generated receipt and does not require a signature.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
