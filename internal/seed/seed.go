package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"github.com/xuri/excelize/v2"

	"orderscan/internal/normalize"
)

type lineSeed struct {
	SKU   string
	Title string
	Color string
	Price int64
}

var catalog = []lineSeed{
	{"SKU-1001", "پیراهن مردانه", "آبی", 850000},
	{"SKU-1002", "لیوان سرامیکی", "سفید", 320000},
	{"SKU-1003", "کوله پشتی", "مشکی", 1450000},
	{"SKU-1004", "دفترچه یادداشت", "زرد", 95000},
	{"SKU-1005", "ماگ حرارتی", "قرمز", 410000},
	{"SKU-1006", "جاکلیدی چرمی", "قهوه‌ای", 120000},
}

var locations = []struct{ State, City string }{
	{"تهران", "تهران"},
	{"اصفهان", "کاشان"},
	{"فارس", "شیراز"},
	{"خراسان رضوی", "مشهد"},
	{"آذربایجان شرقی", "تبریز"},
}

// Rows generates a sample export with n orders for manual testing. The same
// seed always yields the same rows. Each order carries one to three distinct
// line items; the payment column repeats on every row of an order, as in the
// real export.
func Rows(n int, seed int64) []normalize.Row {
	rng := rand.New(rand.NewSource(seed))
	var rows []normalize.Row
	serial := 1000
	for i := 0; i < n; i++ {
		serial++
		loc := locations[rng.Intn(len(locations))]
		perm := rng.Perm(len(catalog))
		lines := 1 + rng.Intn(3)

		payment := int64(0)
		var orderRows []normalize.Row
		for j := 0; j < lines; j++ {
			item := catalog[perm[j]]
			qty := 1 + rng.Intn(4)
			payment += item.Price * int64(qty)
			orderRows = append(orderRows, normalize.Row{
				normalize.LabelOrderID:  strconv.Itoa(serial),
				normalize.LabelSKU:      item.SKU,
				normalize.LabelTitle:    item.Title,
				normalize.LabelColor:    item.Color,
				normalize.LabelQuantity: strconv.Itoa(qty),
				normalize.LabelPrice:    strconv.FormatInt(item.Price, 10),
				normalize.LabelState:    loc.State,
				normalize.LabelCity:     loc.City,
			})
		}
		for _, row := range orderRows {
			row[normalize.LabelPayment] = strconv.FormatInt(payment, 10)
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteXLSX renders rows as a single-sheet workbook with the Persian headers.
func WriteXLSX(w io.Writer, rows []normalize.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	labels := normalize.Labels()
	header := make([]any, len(labels))
	for i, label := range labels {
		header[i] = label
	}
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cells := make([]any, len(labels))
		for j, label := range labels {
			if v, ok := row[label]; ok {
				cells[j] = v
			}
		}
		anchor, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("Sheet1", anchor, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteCSV renders rows with the same header layout as WriteXLSX.
func WriteCSV(w io.Writer, rows []normalize.Row) error {
	labels := normalize.Labels()
	cw := csv.NewWriter(w)
	if err := cw.Write(labels); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, len(labels))
		for j, label := range labels {
			if v, ok := row[label]; ok && v != nil {
				record[j] = fmt.Sprint(v)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
