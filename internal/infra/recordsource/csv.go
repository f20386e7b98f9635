package recordsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aalvaropc/statemelt/internal/domain"
)

// readCSV decodes a header row followed by one row per state. Columns may appear in any order;
// unknown columns are ignored and empty cells count as missing.
func readCSV(path string) ([]recordDTO, error) {
	const op = "recordsource.csv"

	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   op,
			Kind: domain.KindNotFound,
			Path: path,
			Err:  fmt.Errorf("%w: %w", err, domain.ErrNotFound),
		}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, decodeError(op, path, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		cols[strings.TrimSpace(h)] = i
	}

	var dtos []recordDTO
	for i := 0; ; i++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, decodeError(op, path, err)
		}

		d, cerr := csvRecord(cols, row)
		if cerr != nil {
			return nil, invalidRecord(path, fmt.Sprintf("records[%d].%s", i, cerr.column), cerr.msg)
		}
		dtos = append(dtos, d)
	}
	return dtos, nil
}

type cellError struct {
	column string
	msg    string
}

func csvRecord(cols map[string]int, row []string) (recordDTO, *cellError) {
	var d recordDTO

	if i, ok := cols[colName]; ok {
		name := row[i]
		d.Name = &name
	}

	numbers := []struct {
		column string
		dst    **float64
	}{
		{colObesity, &d.ObesityPercentage},
		{string(domain.ChainMcDonalds), &d.McDonalds},
		{string(domain.ChainStarbucks), &d.Starbucks},
		{string(domain.ChainSubway), &d.Subway},
		{string(domain.ChainTacoBell), &d.TacoBell},
	}
	for _, n := range numbers {
		i, ok := cols[n.column]
		if !ok {
			continue
		}
		cell := strings.TrimSpace(row[i])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return recordDTO{}, &cellError{column: n.column, msg: fmt.Sprintf("not a number: %q", cell)}
		}
		*n.dst = &v
	}
	return d, nil
}
