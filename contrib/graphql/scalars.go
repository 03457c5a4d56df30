package graphql

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/99designs/gqlgen/graphql"
)

// MarshalJSONString marshals a dict or map value to the JSONString
// scalar: the JSON encoding of the value, as a string.
func MarshalJSONString(v any) graphql.Marshaler {
	data, err := json.Marshal(v)
	if err != nil {
		return graphql.Null
	}
	return graphql.WriterFunc(func(w io.Writer) {
		graphql.MarshalString(string(data)).MarshalGQL(w)
	})
}

// UnmarshalJSONString unmarshals a JSONString scalar input.
func UnmarshalJSONString(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("JSONString must be a string, got %T", v)
	}
	var out any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("JSONString: %w", err)
	}
	return out, nil
}

// MarshalDateTime marshals a time to the DateTime scalar.
func MarshalDateTime(t time.Time) graphql.Marshaler {
	if t.IsZero() {
		return graphql.Null
	}
	return graphql.MarshalTime(t)
}

// UnmarshalDateTime unmarshals a DateTime scalar input.
func UnmarshalDateTime(v any) (time.Time, error) {
	return graphql.UnmarshalTime(v)
}

// Point is the value of a point field.
type Point struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// NewPoint returns a GeoJSON point.
func NewPoint(lng, lat float64) Point {
	return Point{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Polygon is the value of a polygon field.
type Polygon struct {
	Type        string        `json:"type" bson:"type"`
	Coordinates [][][]float64 `json:"coordinates" bson:"coordinates"`
}

// MultiPolygon is the value of a multi-polygon field.
type MultiPolygon struct {
	Type        string          `json:"type" bson:"type"`
	Coordinates [][][][]float64 `json:"coordinates" bson:"coordinates"`
}

// File is the value of a file field.
type File struct {
	ContentType string `json:"content_type" bson:"contentType"`
	MD5         string `json:"md5" bson:"md5"`
	ChunkSize   int    `json:"chunk_size" bson:"chunkSize"`
	Length      int    `json:"length" bson:"length"`
	Data        string `json:"data" bson:"data"`
}
