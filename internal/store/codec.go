package store

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"mandate-engine/internal/model"
)

//go:embed state.schema.json
var stateSchemaJSON string

var (
	stateSchema = jsonschema.MustCompileString("state.schema.json", stateSchemaJSON)

	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil)
)

// Encode serializes a state to zstd-compressed JSON.
func Encode(st *model.SelectionState) ([]byte, error) {
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, err
	}
	return encoder.EncodeAll(raw, nil), nil
}

// Decode reverses Encode. The JSON document is checked against the saved
// state schema before it is decoded, so foreign or hand-edited blobs fail
// loudly instead of silently losing fields.
func Decode(blob []byte) (*model.SelectionState, error) {
	raw, err := decoder.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress state: %w", err)
	}
	return DecodeJSON(raw)
}

// DecodeJSON validates and decodes an uncompressed state document.
func DecodeJSON(raw []byte) (*model.SelectionState, error) {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	if err := stateSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid state: %w", err)
	}

	st := model.NewSelectionState()
	if err := json.Unmarshal(raw, st); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	if st.Selections == nil {
		st.Selections = []model.ProjectSelection{}
	}
	return st, nil
}

// WriteSnapshot stores a state in a standalone .zst file.
func WriteSnapshot(path string, st *model.SelectionState) error {
	blob, err := Encode(st)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func ReadSnapshot(path string) (*model.SelectionState, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	st, err := Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return st, nil
}
