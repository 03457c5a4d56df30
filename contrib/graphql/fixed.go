package graphql

// Fixed object types of geo-spatial and file fields. They are shared by
// every schema and never registered under a model name.
var (
	PointFieldType        = geoObject("PointFieldType", 1)
	PolygonFieldType      = geoObject("PolygonFieldType", 3)
	MultiPolygonFieldType = geoObject("MultiPolygonFieldType", 4)

	FileFieldType = &Object{
		Name: "FileFieldType",
		Fields: []*ObjectField{
			{Name: "contentType", Type: &Field{Type: String}},
			{Name: "md5", Type: &Field{Type: String}},
			{Name: "chunkSize", Type: &Field{Type: Int}},
			{Name: "length", Type: &Field{Type: Int}},
			{Name: "data", Type: &Field{Type: String}},
		},
	}
)

// FixedObjects returns the fixed object types in a stable order.
func FixedObjects() []*Object {
	return []*Object{PointFieldType, PolygonFieldType, MultiPolygonFieldType, FileFieldType}
}

// geoObject returns a GeoJSON object whose coordinates are Float lists
// nested depth times.
func geoObject(name string, depth int) *Object {
	var coords Type = Float
	for range depth {
		coords = &List{Of: coords}
	}
	return &Object{
		Name: name,
		Fields: []*ObjectField{
			{Name: "type", Type: &Field{Type: String}},
			{Name: "coordinates", Type: coords},
		},
	}
}
