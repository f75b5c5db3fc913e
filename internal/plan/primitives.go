package plan

// primitiveWrappers maps the basic types with a runtime adapter to its name.
// uintptr and complex types have none.
var primitiveWrappers = map[string]string{
	"bool":    "BoolWrap",
	"string":  "StringWrap",
	"int":     "IntWrap",
	"int8":    "Int8Wrap",
	"int16":   "Int16Wrap",
	"int32":   "Int32Wrap",
	"rune":    "Int32Wrap",
	"int64":   "Int64Wrap",
	"uint":    "UintWrap",
	"uint8":   "Uint8Wrap",
	"byte":    "Uint8Wrap",
	"uint16":  "Uint16Wrap",
	"uint32":  "Uint32Wrap",
	"uint64":  "Uint64Wrap",
	"float32": "Float32Wrap",
	"float64": "Float64Wrap",
}

// PrimitiveWrapper returns the runtime adapter of a basic type name.
func PrimitiveWrapper(basic string) (string, bool) {
	w, ok := primitiveWrappers[basic]
	return w, ok
}
