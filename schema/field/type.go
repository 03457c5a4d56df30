package field

import (
	"fmt"
	"strings"
)

// A Type represents a field kind of a document model.
// The set of kinds is closed; TypeOther marks a custom kind that has
// no GraphQL mapping and fails conversion.
type Type uint8

// List of field kinds.
const (
	TypeInvalid Type = iota
	TypeString
	TypeEmail
	TypeURL
	TypeUUID
	TypeObjectID
	TypeInt
	TypeLong
	TypeSequence
	TypeBool
	TypeDecimal
	TypeFloat
	TypeDateTime
	TypeDict
	TypeMap
	TypePoint
	TypePolygon
	TypeMultiPolygon
	TypeFile
	TypeList
	TypeEmbeddedDocumentList
	TypeGenericReference
	TypeGenericEmbeddedDocument
	TypeEmbeddedDocument
	TypeReference
	TypeCachedReference
	TypeLazyReference
	TypeOther
	endTypes
)

var typeNames = [...]string{
	TypeInvalid:                 "invalid",
	TypeString:                  "StringField",
	TypeEmail:                   "EmailField",
	TypeURL:                     "URLField",
	TypeUUID:                    "UUIDField",
	TypeObjectID:                "ObjectIdField",
	TypeInt:                     "IntField",
	TypeLong:                    "LongField",
	TypeSequence:                "SequenceField",
	TypeBool:                    "BooleanField",
	TypeDecimal:                 "DecimalField",
	TypeFloat:                   "FloatField",
	TypeDateTime:                "DateTimeField",
	TypeDict:                    "DictField",
	TypeMap:                     "MapField",
	TypePoint:                   "PointField",
	TypePolygon:                 "PolygonField",
	TypeMultiPolygon:            "MultiPolygonField",
	TypeFile:                    "FileField",
	TypeList:                    "ListField",
	TypeEmbeddedDocumentList:    "EmbeddedDocumentListField",
	TypeGenericReference:        "GenericReferenceField",
	TypeGenericEmbeddedDocument: "GenericEmbeddedDocumentField",
	TypeEmbeddedDocument:        "EmbeddedDocumentField",
	TypeReference:               "ReferenceField",
	TypeCachedReference:         "CachedReferenceField",
	TypeLazyReference:           "LazyReferenceField",
	TypeOther:                   "other",
}

// String returns the kind name, e.g. "StringField".
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Valid reports if the given type is a known kind.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < TypeOther
}

// IsList reports if the kind wraps an inner field.
func (t Type) IsList() bool {
	return t == TypeList || t == TypeEmbeddedDocumentList
}

// IsGeneric reports if the kind may point to one of several models.
func (t Type) IsGeneric() bool {
	return t == TypeGenericReference || t == TypeGenericEmbeddedDocument
}

// IsReference reports if the kind points to a single target model.
func (t Type) IsReference() bool {
	switch t {
	case TypeEmbeddedDocument, TypeReference, TypeCachedReference, TypeLazyReference:
		return true
	default:
		return false
	}
}

// ParseType returns the kind for the given name. Both the kind name
// ("ReferenceField") and its snake-case alias ("reference") are accepted,
// case-insensitively.
func ParseType(name string) (Type, bool) {
	key := strings.ToLower(strings.ReplaceAll(name, "_", ""))
	key = strings.TrimSuffix(key, "field")
	for t := TypeString; t < TypeOther; t++ {
		if strings.TrimSuffix(strings.ToLower(typeNames[t]), "field") == key {
			return t, true
		}
	}
	switch key {
	case "str", "text":
		return TypeString, true
	case "oid":
		return TypeObjectID, true
	case "bool":
		return TypeBool, true
	case "date", "time":
		return TypeDateTime, true
	}
	return TypeInvalid, false
}
