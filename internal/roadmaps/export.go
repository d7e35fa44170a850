package roadmaps

import (
	"bytes"
	"encoding/json"
	"fmt"

	"goal-detector/internal/questionnaire"
	"goal-detector/internal/roadmaps/engine"
)

// ExportContentType is the MIME type of export documents.
const ExportContentType = "application/json"

// Document is the downloadable form of a roadmap: the profile and the
// answers it was generated from, followed by the payload fields.
type Document struct {
	Profile   Profile                 `json:"profile"`
	Responses questionnaire.Responses `json:"responses"`
	engine.Payload
}

// NewDocument builds the export document for a stored roadmap.
func NewDocument(rm Roadmap) Document {
	return Document{Profile: rm.Profile, Responses: rm.Responses, Payload: rm.Payload}
}

// MarshalDocument encodes d indented with two spaces.
func MarshalDocument(d Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ParseDocument decodes an export document. String lists in responses come
// back as []string so a parsed document compares equal to the one marshaled.
func ParseDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	d.Responses = restoreLists(d.Responses)
	return d, nil
}

// ExportFileName is the attachment name used for downloads.
func ExportFileName(roadmapID string) string {
	return "goal-roadmap-" + roadmapID + ".json"
}

func restoreLists(r questionnaire.Responses) questionnaire.Responses {
	for k, v := range r {
		items, ok := v.([]any)
		if !ok {
			continue
		}
		strs := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				strs = nil
				break
			}
			strs = append(strs, s)
		}
		if strs != nil {
			r[k] = strs
		}
	}
	return r
}
