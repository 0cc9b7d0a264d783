package people

import (
	"encoding/json"
	"strings"
)

// ParseDocuments reads the documentos payload: a JSON array, or the legacy
// "name | url, name2 | url2" blob. The result keeps insertion order and is
// unique by URL. Unparsable payloads degrade to an empty list.
func ParseDocuments(raw string) []Document {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return []Document{}
	}

	var parsed []Document
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		return dedupeByURL(parsed)
	}

	var docs []Document
	for _, item := range strings.Split(trimmed, ",") {
		parts := strings.Split(strings.TrimSpace(item), "|")
		if len(parts) < 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		url := strings.TrimSpace(parts[1])
		if url == "" {
			continue
		}
		docs = append(docs, Document{Name: name, URL: url})
	}
	return dedupeByURL(docs)
}

// SerializeDocuments always writes the JSON form.
func SerializeDocuments(docs []Document) string {
	payload, err := json.Marshal(dedupeByURL(docs))
	if err != nil {
		return "[]"
	}
	return string(payload)
}

func dedupeByURL(docs []Document) []Document {
	seen := make(map[string]struct{}, len(docs))
	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if doc.URL == "" {
			continue
		}
		if _, dup := seen[doc.URL]; dup {
			continue
		}
		seen[doc.URL] = struct{}{}
		out = append(out, doc)
	}
	return out
}
