// internal/repository/repository.go
package repository

import (
	"encoding/json"
	"fmt"

	"github.com/craftconnect/backend/internal/store"
)

// toDoc converts an entity to its stored document through its JSON tags.
func toDoc(v interface{}) (store.Document, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entity: %w", err)
	}
	var doc store.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to encode entity: %w", err)
	}
	return doc, nil
}

// fromDoc decodes a stored document back into an entity.
func fromDoc(doc store.Document, v interface{}) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}
