package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

type importRow struct {
	Name  string `csv:"name"`
	Price string `csv:"price"`
}

type exportRow struct {
	ID    int64  `csv:"id"`
	Name  string `csv:"name"`
	Price string `csv:"price"`
}

// ImportCSV creates one product per name,price row. Rows that fail are
// reported in the joined error; the remaining rows are still created.
func ImportCSV(ctx context.Context, c *ProductClient, r io.Reader) ([]Product, error) {
	var rows []*importRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	var (
		created []Product
		errs    []error
	)
	for i, row := range rows {
		line := i + 2 // header is line 1

		price, err := decimal.NewFromString(strings.TrimSpace(row.Price))
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: invalid price %q: %w", line, row.Price, err))
			continue
		}

		product, err := c.Create(ctx, strings.TrimSpace(row.Name), price)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		created = append(created, *product)
	}

	return created, errors.Join(errs...)
}

// ExportCSV writes every product as an id,name,price row.
func ExportCSV(ctx context.Context, c *ProductClient, w io.Writer) error {
	products, err := c.List(ctx)
	if err != nil {
		return err
	}

	rows := make([]*exportRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, &exportRow{ID: p.ID, Name: p.Name, Price: p.Price.StringFixed(2)})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
