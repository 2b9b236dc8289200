package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"train-service/internal/storage"
)

// TargetColumn is the reserved header naming the target, matched
// case-insensitively. All other columns become features in header order.
const TargetColumn = "target"

var (
	ErrInvalidLocation    = errors.New("invalid dataset location")
	ErrDatasetUnavailable = errors.New("dataset unavailable")
	ErrMalformedDataset   = errors.New("malformed dataset")
)

// Dataset is the parsed, row-aligned training input for one run.
type Dataset struct {
	Columns  []string
	Features [][]float64
	Target   []float64
}

// Load fetches the object behind an s3:// location and parses it as a CSV
// dataset with a header row.
func Load(ctx context.Context, store storage.ObjectStore, location string) (*Dataset, error) {
	bucket, key, err := storage.ParseS3Location(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}

	body, err := store.GetObject(ctx, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}
	defer body.Close()

	dataset, err := Parse(body)
	if err != nil {
		return nil, err
	}
	return dataset, nil
}

// Parse reads delimited text into feature and target arrays.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformedDataset)
	}

	targetIdx := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), TargetColumn) {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return nil, fmt.Errorf("%w: no %q column in header", ErrMalformedDataset, TargetColumn)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: no feature columns", ErrMalformedDataset)
	}

	columns := make([]string, 0, len(header)-1)
	for i, name := range header {
		if i != targetIdx {
			columns = append(columns, name)
		}
	}

	dataset := &Dataset{Columns: columns}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDataset, err)
		}

		row := make([]float64, 0, len(columns))
		var target float64
		for i, cell := range record {
			value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: non-numeric value %q", ErrMalformedDataset, cell)
			}
			if i == targetIdx {
				target = value
			} else {
				row = append(row, value)
			}
		}

		dataset.Features = append(dataset.Features, row)
		dataset.Target = append(dataset.Target, target)
	}

	if len(dataset.Features) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrMalformedDataset)
	}

	return dataset, nil
}
