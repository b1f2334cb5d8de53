package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// Tags is the set of topic tags on a problem. The column holds raw JSON
// which, depending on when the row was written, may be an array of strings,
// an object whose keys are the tags, or null. All three load as a plain
// list of strings.
type Tags []string

// NormalizeTags materializes a raw JSON tags value as a list of strings.
// Object keys come back sorted so the result is deterministic; null and
// other scalar values become an empty list.
func NormalizeTags(raw []byte) (Tags, error) {
	if len(raw) == 0 {
		return Tags{}, nil
	}
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("failed to parse tags: %w", err)
	}
	switch v := value.(type) {
	case []interface{}:
		tags := make(Tags, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
		return tags, nil
	case map[string]interface{}:
		tags := make(Tags, 0, len(v))
		for key := range v {
			tags = append(tags, key)
		}
		sort.Strings(tags)
		return tags, nil
	default:
		return Tags{}, nil
	}
}

// Scan implements sql.Scanner.
func (t *Tags) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported tags column type %T", src)
	}
	tags, err := NormalizeTags(raw)
	if err != nil {
		return err
	}
	*t = tags
	return nil
}

// Value implements driver.Valuer. Tags are always written back as a JSON
// array, regardless of the shape they were read in.
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	raw, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}
