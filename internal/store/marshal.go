package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/exhaustive/internal/exhaustive"
)

// marshalState converts a checkpoint to JSON TEXT for storage.
func marshalState(cp exhaustive.Checkpoint) (string, error) {
	if cp.Path == nil {
		cp.Path = []exhaustive.Position{}
	}
	data, err := json.Marshal(cp)
	if err != nil {
		return "", fmt.Errorf("marshal checkpoint: %w", err)
	}
	return string(data), nil
}

// unmarshalState parses a stored checkpoint and validates it.
func unmarshalState(data string) (exhaustive.Checkpoint, error) {
	var cp exhaustive.Checkpoint
	if err := json.Unmarshal([]byte(data), &cp); err != nil {
		return exhaustive.Checkpoint{}, fmt.Errorf("unmarshal checkpoint: %w", err)
	}
	if err := cp.Validate(); err != nil {
		return exhaustive.Checkpoint{}, fmt.Errorf("unmarshal checkpoint: %w", err)
	}
	return cp, nil
}

func marshalPath(path []exhaustive.Position) (string, error) {
	if path == nil {
		path = []exhaustive.Position{}
	}
	data, err := json.Marshal(path)
	if err != nil {
		return "", fmt.Errorf("marshal path: %w", err)
	}
	return string(data), nil
}

func unmarshalPath(data string) ([]exhaustive.Position, error) {
	path := []exhaustive.Position{}
	if err := json.Unmarshal([]byte(data), &path); err != nil {
		return nil, fmt.Errorf("unmarshal path: %w", err)
	}
	return path, nil
}
