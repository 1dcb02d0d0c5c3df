package providers

import (
	"encoding/json"
	"strconv"

	"github.com/optimade/optimade-go/pkg/constants"
	"github.com/optimade/optimade-go/pkg/errors"
)

// Record is one provider entry: the source object with its attributes lifted to
// the top level and a synthesized "_id": {"$oid": ...}.
type Record map[string]any

// ID returns the provider id.
func (r Record) ID() string { return r.str("id") }

// Type returns the resource type, normally "links".
func (r Record) Type() string { return r.str("type") }

// Name returns the human readable provider name.
func (r Record) Name() string { return r.str("name") }

// Description returns the provider description.
func (r Record) Description() string { return r.str("description") }

// BaseURL returns the provider's index meta-database URL.
func (r Record) BaseURL() string { return r.str("base_url") }

// Homepage returns the provider homepage.
func (r Record) Homepage() string { return r.str("homepage") }

// OID returns the synthesized ObjectId string.
func (r Record) OID() string {
	if m, ok := r["_id"].(map[string]any); ok {
		s, _ := m["$oid"].(string)
		return s
	}
	return ""
}

func (r Record) str(key string) string {
	s, _ := r[key].(string)
	return s
}

// document is the wire shape of a provider list source.
type document struct {
	Data *json.RawMessage `json:"data"`
}

// Normalize decodes a provider list document and returns its records with the
// example provider removed, attributes flattened and ObjectIds attached.
// A body that is not JSON, or that lacks a "data" array of objects, is a
// *errors.ParseError.
func Normalize(body []byte, source string) ([]Record, error) {
	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, errors.WrapParse("json", source, err)
	}
	if doc.Data == nil {
		return nil, errors.NewParseError("json", source, `missing "data" key`, nil)
	}

	var raw []map[string]any
	if err := json.Unmarshal(*doc.Data, &raw); err != nil {
		return nil, errors.NewParseError("json", source, `"data" is not an array of objects`, err)
	}

	records := make([]Record, 0, len(raw))
	for i, obj := range raw {
		id, ok := obj["id"].(string)
		if !ok {
			return nil, errors.NewParseError("json", source, "provider at index "+strconv.Itoa(i)+" has no string id", nil)
		}
		if id == constants.ExampleProviderID {
			continue
		}
		records = append(records, normalizeOne(obj))
	}
	return records, nil
}

func normalizeOne(obj map[string]any) Record {
	rec := make(Record, len(obj)+4)
	for k, v := range obj {
		if k == "attributes" {
			continue
		}
		rec[k] = v
	}
	if attrs, ok := obj["attributes"].(map[string]any); ok {
		for k, v := range attrs {
			rec[k] = v
		}
	}
	rec["_id"] = map[string]any{"$oid": MongoID(rec.ID(), rec.Type())}
	return rec
}
