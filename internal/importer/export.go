package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"balaji-storefront/internal/domain"
)

// WriteCSV writes products in the layout NewCSVImporter reads. Specs after
// the first go on continuation rows, sorted by name.
func WriteCSV(w io.Writer, products []domain.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range products {
		names := make([]string, 0, len(p.Specs))
		for name := range p.Specs {
			names = append(names, name)
		}
		sort.Strings(names)

		first := ""
		if len(names) > 0 {
			first = names[0]
		}
		orig := ""
		if p.OriginalPrice != nil {
			orig = strconv.FormatInt(*p.OriginalPrice, 10)
		}
		record := []string{
			strconv.Itoa(p.ID), p.Name, p.Description, strconv.FormatInt(p.Price, 10), orig, p.Image, p.Category,
			strconv.FormatFloat(p.Rating, 'f', -1, 64), strconv.Itoa(p.Reviews),
			strconv.FormatBool(p.InStock), strconv.FormatBool(p.Featured), p.Badge,
			first, p.Specs[first],
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write product %d: %w", p.ID, err)
		}
		for _, name := range names[min(1, len(names)):] {
			row := make([]string, len(Header))
			row[len(row)-2] = name
			row[len(row)-1] = p.Specs[name]
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write spec for product %d: %w", p.ID, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
