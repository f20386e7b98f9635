package recordsource

import (
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	jsoniter "github.com/json-iterator/go"

	"github.com/aalvaropc/statemelt/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// readJSON decodes an array of record objects. A recordsPath other than "$" locates the array
// inside a larger document.
func readJSON(path, recordsPath string) ([]recordDTO, error) {
	const op = "recordsource.json"

	b, err := readFile(op, path)
	if err != nil {
		return nil, err
	}

	expr := strings.TrimSpace(recordsPath)
	if expr == "" || expr == "$" {
		var dtos []recordDTO
		if err := json.Unmarshal(b, &dtos); err != nil {
			return nil, decodeError(op, path, err)
		}
		return dtos, nil
	}

	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, decodeError(op, path, err)
	}

	sub, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, &domain.OpError{
			Op:   op,
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("records_path %q: %v: %w", expr, err, domain.ErrInvalidConfig),
		}
	}

	raw, err := json.Marshal(sub)
	if err != nil {
		return nil, decodeError(op, path, err)
	}

	var dtos []recordDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, decodeError(op, path, fmt.Errorf("records_path %q does not select an array of records: %v", expr, err))
	}
	return dtos, nil
}
