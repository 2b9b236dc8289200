package worker

import (
	"encoding/json"
	"errors"
	"fmt"

	"train-service/pkg/models"
)

// decodeRunMessage strictly decodes one queue payload. Any missing or
// mistyped field makes the message poison: its run identity cannot be
// trusted, so it is dropped without a status call.
func decodeRunMessage(payload []byte) (*models.RunMessage, error) {
	var aux struct {
		UserId        *int64          `json:"user_id"`
		DatasetS3Path *string         `json:"dataset_s3_path"`
		RunId         *int64          `json:"run_id"`
		Configuration json.RawMessage `json:"configuration"`
	}
	if err := json.Unmarshal(payload, &aux); err != nil {
		return nil, fmt.Errorf("failed to decode run message: %w", err)
	}

	switch {
	case aux.UserId == nil || *aux.UserId <= 0:
		return nil, errors.New("run message is missing a positive user_id")
	case aux.DatasetS3Path == nil || *aux.DatasetS3Path == "":
		return nil, errors.New("run message is missing dataset_s3_path")
	case aux.RunId == nil || *aux.RunId <= 0:
		return nil, errors.New("run message is missing a positive run_id")
	case aux.Configuration == nil:
		return nil, errors.New("run message is missing configuration")
	}

	var configuration map[string]any
	if err := json.Unmarshal(aux.Configuration, &configuration); err != nil {
		return nil, fmt.Errorf("run message configuration must be an object: %w", err)
	}
	if configuration == nil {
		return nil, errors.New("run message configuration must be an object")
	}

	return &models.RunMessage{
		UserId:        *aux.UserId,
		DatasetS3Path: *aux.DatasetS3Path,
		RunId:         *aux.RunId,
		Configuration: configuration,
	}, nil
}
