// Package fraud parses, synthesizes and scores card transactions.
package fraud

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"CloudLab/internal/domain/models"
)

const (
	colAmount      = "amount"
	colHour        = "hour"
	colCategory    = "merchant_category"
	colCardPresent = "card_present"
	colIsFraud     = "is_fraud"
)

var requiredColumns = []string{colAmount, colHour, colCategory, colCardPresent}

// minRows is the smallest sample the isolation forest can be fitted on.
const minRows = 2

// ParseTransactionsCSV reads a header row followed by one transaction per
// line. is_fraud is optional; when present every row must carry a value.
// At least two data rows are required.
func ParseTransactionsCSV(r io.Reader) ([]models.Transaction, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &models.UploadError{Err: errors.New("file is empty")}
	}
	if err != nil {
		return nil, &models.UploadError{Row: 1, Err: err}
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			return nil, &models.UploadError{Column: c, Err: errors.New("missing required column")}
		}
	}
	fraudIdx, labeled := index[colIsFraud]

	var out []models.Transaction
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &models.UploadError{Row: line, Err: err}
		}

		tx, err := parseRow(rec, index, line)
		if err != nil {
			return nil, err
		}
		if labeled {
			v, err := parseBool(rec[fraudIdx])
			if err != nil {
				return nil, &models.UploadError{Row: line, Column: colIsFraud, Err: err}
			}
			tx.IsFraud = &v
		}
		out = append(out, tx)
	}

	if len(out) == 0 {
		return nil, &models.UploadError{Err: errors.New("no data rows")}
	}
	if len(out) < minRows {
		return nil, &models.UploadError{Err: fmt.Errorf("need at least %d data rows, got %d", minRows, len(out))}
	}
	return out, nil
}

func parseRow(rec []string, index map[string]int, line int) (models.Transaction, error) {
	var tx models.Transaction

	amount, err := strconv.ParseFloat(strings.TrimSpace(rec[index[colAmount]]), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return tx, &models.UploadError{Row: line, Column: colAmount, Err: fmt.Errorf("invalid amount %q", rec[index[colAmount]])}
	}
	hour, err := strconv.Atoi(strings.TrimSpace(rec[index[colHour]]))
	if err != nil || hour < 0 || hour > 23 {
		return tx, &models.UploadError{Row: line, Column: colHour, Err: fmt.Errorf("invalid hour %q", rec[index[colHour]])}
	}
	category := strings.ToLower(strings.TrimSpace(rec[index[colCategory]]))
	if category == "" {
		return tx, &models.UploadError{Row: line, Column: colCategory, Err: errors.New("empty category")}
	}
	present, err := parseBool(rec[index[colCardPresent]])
	if err != nil {
		return tx, &models.UploadError{Row: line, Column: colCardPresent, Err: err}
	}

	tx.Amount = amount
	tx.Hour = hour
	tx.MerchantCategory = category
	tx.CardPresent = present
	return tx, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "t":
		return true, nil
	case "0", "false", "no", "n", "f":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
