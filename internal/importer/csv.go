// Package importer turns a spreadsheet export into catalog rows.
package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Column headers of the pharmacy spreadsheet export
const (
	ColName          = "PRODUIT"
	ColSalePrice     = "PPV"
	ColPurchasePrice = "PPH"
	ColBarcode       = "Code barre"
)

// Placeholders stored when a column is absent from the file or the row
const (
	MissingName          = "No Product Found"
	MissingSalePrice     = "No PPV Found"
	MissingPurchasePrice = "No PPH Found"
)

var ErrMalformed = errors.New("malformed CSV file")

// Row is one product line read from the file
type Row struct {
	Name          string
	SalePrice     string
	PurchasePrice string
	Barcode       string
}

// Parse reads a CSV with a header row. Unknown columns are ignored and
// missing ones are filled with placeholders; barcodes are trimmed.
func Parse(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	// Excel puts a BOM in front of UTF-8 exports
	if bom, err := br.Peek(3); err == nil && string(bom) == "\xef\xbb\xbf" {
		br.Discard(3)
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return []Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformed, err)
	}

	index := map[string]int{}
	for i, h := range headers {
		if !utf8.ValidString(h) {
			return nil, fmt.Errorf("%w: file is not UTF-8", ErrMalformed)
		}
		h = strings.TrimSpace(h)
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	rows := []Row{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		for _, field := range record {
			if !utf8.ValidString(field) {
				line, _ := reader.FieldPos(0)
				return nil, fmt.Errorf("%w: line %d is not UTF-8", ErrMalformed, line)
			}
		}

		rows = append(rows, Row{
			Name:          column(record, index, ColName, MissingName),
			SalePrice:     column(record, index, ColSalePrice, MissingSalePrice),
			PurchasePrice: column(record, index, ColPurchasePrice, MissingPurchasePrice),
			Barcode:       strings.TrimSpace(column(record, index, ColBarcode, "")),
		})
	}
	return rows, nil
}

func column(record []string, index map[string]int, name, fallback string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return fallback
	}
	return record[i]
}
