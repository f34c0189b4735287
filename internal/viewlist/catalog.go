package viewlist

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type catalogDocument struct {
	Views []View `yaml:"views"`
}

// LoadCatalog reads and strictly validates a views catalog. Any schema
// problem fails the whole load.
func LoadCatalog(path string) (Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Catalog{}, errors.New("catalog path is required")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	views, err := ParseCatalog(path, b)
	if err != nil {
		return Catalog{}, err
	}
	sum := sha256.Sum256(b)
	return Catalog{Path: path, Digest: hex.EncodeToString(sum[:]), Views: views}, nil
}

// ParseCatalog validates raw catalog bytes. name is only used in errors.
func ParseCatalog(name string, b []byte) ([]View, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	errs := validateCatalogYAML(&root)
	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case err == nil:
		line := extra.Line
		if len(extra.Content) > 0 {
			line = extra.Content[0].Line
		}
		errs = append(errs, schemaError{Path: "catalog", Line: line, Message: "unexpected extra YAML document"})
	case !errors.Is(err, io.EOF):
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if len(errs) > 0 {
		return nil, errors.New(formatSchemaErrors(name, errs))
	}
	var doc catalogDocument
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if doc.Views == nil {
		doc.Views = []View{}
	}
	return doc.Views, nil
}
