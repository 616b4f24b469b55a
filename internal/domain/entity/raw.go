// Package entity reads stored guru and gig documents and normalizes them
// into markers. Documents are read-only JSON owned by the backing store.
package entity

import (
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/kailas-cloud/nearby/internal/domain/geo"
	"github.com/kailas-cloud/nearby/internal/domain/marker"
)

// Raw is a stored document of one entity type.
type Raw struct {
	Type marker.Type
	Key  string // storage identifier, used when the document has no id
	Doc  []byte
}

// NewRaw creates a raw record.
func NewRaw(t marker.Type, key string, doc []byte) Raw {
	return Raw{Type: t, Key: key, Doc: doc}
}

// Location returns the record's coordinates. ok is false when the location
// sub-object is missing, either field is non-numeric, or the values are out
// of range. Malformed documents never panic.
func (r Raw) Location() (geo.Coordinate, bool) {
	if !gjson.ValidBytes(r.Doc) {
		return geo.Coordinate{}, false
	}
	loc := gjson.GetBytes(r.Doc, "location")
	if !loc.IsObject() {
		return geo.Coordinate{}, false
	}
	lat, ok := number(loc.Get("lat"))
	if !ok {
		return geo.Coordinate{}, false
	}
	lng, ok := number(loc.Get("lng"))
	if !ok {
		return geo.Coordinate{}, false
	}
	c, err := geo.NewCoordinate(lat, lng)
	if err != nil {
		return geo.Coordinate{}, false
	}
	return c, true
}

// ID returns the document id: "id", then "_id" (plain or {"$oid": ...}),
// then the storage key.
func (r Raw) ID() string {
	if v := gjson.GetBytes(r.Doc, "id"); v.Exists() && v.String() != "" {
		return v.String()
	}
	oid := gjson.GetBytes(r.Doc, "_id")
	if oid.IsObject() {
		oid = oid.Get("$oid")
	}
	if oid.Exists() && oid.String() != "" {
		return oid.String()
	}
	return r.Key
}

func (r Raw) get(path string) gjson.Result {
	return gjson.GetBytes(r.Doc, path)
}

// str returns the first non-empty string among paths.
func (r Raw) str(paths ...string) string {
	for _, p := range paths {
		if v := r.get(p); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

// optNumber returns nil for missing, null or non-numeric values.
func (r Raw) optNumber(path string) *float64 {
	v, ok := number(r.get(path))
	if !ok {
		return nil
	}
	return &v
}

// strList returns string elements of an array. Object elements contribute
// their "name" field.
func (r Raw) strList(path string) []string {
	arr := r.get(path)
	if !arr.IsArray() {
		return nil
	}
	var out []string
	arr.ForEach(func(_, v gjson.Result) bool {
		s := v.String()
		if v.IsObject() {
			s = v.Get("name").String()
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}

// optTime parses RFC 3339 strings or unix milliseconds.
func (r Raw) optTime(paths ...string) *time.Time {
	for _, p := range paths {
		v := r.get(p)
		switch v.Type {
		case gjson.String:
			if ts, err := time.Parse(time.RFC3339, v.Str); err == nil {
				ts = ts.UTC()
				return &ts
			}
		case gjson.Number:
			ts := time.UnixMilli(v.Int()).UTC()
			return &ts
		}
	}
	return nil
}

// number accepts JSON numbers and numeric strings. NaN and infinities are
// rejected by the later range check.
func number(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Num, true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
