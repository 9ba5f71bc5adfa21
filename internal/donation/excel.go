package donation

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildLedgerWorkbook renders the donation ledger as an Excel workbook for
// the back office.
func BuildLedgerWorkbook(orders []Order) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Donations"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"Receipt No", "Donor Name", "Donor Email", "Method", "Status", "Delivery", "Region", "Delivery Address", "Total", "Courier", "Packets", "Net Payable", "Weight (kg)", "Payment ID", "Created At"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, order := range orders {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), order.ReceiptNo)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), order.DonorName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), order.DonorEmail)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), order.Method)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), order.PaymentStatus)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), order.Delivery)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), string(order.Region))
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), order.DeliveryAddress)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), order.TotalAmount)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), order.CourierCharge)
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), order.PacketCount)
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), order.NetPayable)
		f.SetCellValue(sheetName, fmt.Sprintf("M%d", row), order.TotalWeight)
		f.SetCellValue(sheetName, fmt.Sprintf("N%d", row), order.GatewayPaymentID)
		f.SetCellValue(sheetName, fmt.Sprintf("O%d", row), order.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
