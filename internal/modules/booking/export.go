package booking

import (
	"fmt"
	"io"

	"github.com/kovidbehl97/vroomtest/internal/domain"
	"github.com/tealeg/xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []string{
	"ID", "SessionID", "UserID", "CustomerEmail", "CarID", "Car",
	"PickupDate", "PickupTime", "DropoffDate", "DropoffTime", "Location",
	"Amount", "Currency", "Status", "CreatedAt",
}

// WriteXLSX writes rows as a single "Bookings" sheet.
func WriteXLSX(w io.Writer, rows []domain.BookingWithCar) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Bookings")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetValue(h)
	}

	for _, b := range rows {
		car := ""
		if b.Car != nil {
			car = fmt.Sprintf("%s %s (%d)", b.Car.Make, b.Car.Model, b.Car.Year)
		}

		row := sheet.AddRow()
		row.AddCell().SetValue(b.ID)
		row.AddCell().SetValue(b.SessionID)
		row.AddCell().SetValue(b.UserID)
		row.AddCell().SetValue(b.CustomerEmail)
		row.AddCell().SetValue(b.CarID)
		row.AddCell().SetValue(car)
		row.AddCell().SetValue(b.PickupDate)
		row.AddCell().SetValue(b.PickupTime)
		row.AddCell().SetValue(b.DropoffDate)
		row.AddCell().SetValue(b.DropoffTime)
		row.AddCell().SetValue(b.Location)
		row.AddCell().SetFloat(b.Amount)
		row.AddCell().SetValue(b.Currency)
		row.AddCell().SetValue(string(b.Status))
		row.AddCell().SetValue(b.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return file.Write(w)
}
