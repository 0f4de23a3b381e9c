package culture

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/cultiva/internal/model"
)

// recordsFile is the on-disk layout for curated icon exports.
type recordsFile struct {
	Icons []model.CultureIcon `yaml:"icons"`
}

// ReadRecords decodes a YAML document of curated records and validates each one.
func ReadRecords(r io.Reader) ([]model.CultureIcon, error) {
	var doc recordsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode culture icons: %w", err)
	}

	for i, rec := range doc.Icons {
		if err := ValidateRecord(rec); err != nil {
			return nil, fmt.Errorf("icon at index %d: %w", i, err)
		}
	}

	return doc.Icons, nil
}

// WriteRecords encodes records as a YAML document readable by ReadRecords.
func WriteRecords(w io.Writer, records []model.CultureIcon) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(recordsFile{Icons: records}); err != nil {
		return fmt.Errorf("failed to encode culture icons: %w", err)
	}
	return enc.Close()
}
