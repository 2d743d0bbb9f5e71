package crpt

import "encoding/json"

// Serializer converts a document to its exchange form. A nil, nil return is
// legal and means "no payload"; the submitter sends an empty encoded document
// in that case.
type Serializer interface {
	Convert(v any) ([]byte, error)
}

// JSONSerializer marshals documents with encoding/json.
type JSONSerializer struct{}

func (JSONSerializer) Convert(v any) ([]byte, error) {
	return json.Marshal(v)
}
