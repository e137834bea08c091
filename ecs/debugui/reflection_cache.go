package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes an exported field of a component struct.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
}

// Kind returns the kind of the field, looking through a pointer.
func (f FieldInfo) Kind() reflect.Kind {
	return f.Type.Kind()
}

// ReflectionCache remembers the editable fields of component types so the
// inspector does not walk struct metadata every frame.
type ReflectionCache struct {
	types sync.Map // reflect.Type -> []FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{}
}

// Fields returns the exported fields of t, which may be a struct or a pointer
// to one. Other types have no fields.
func (rc *ReflectionCache) Fields(t reflect.Type) []FieldInfo {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := rc.types.Load(t); ok {
		return cached.([]FieldInfo)
	}
	fields, _ := rc.types.LoadOrStore(t, componentFields(t))
	return fields.([]FieldInfo)
}

func componentFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []FieldInfo
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		info := FieldInfo{Name: sf.Name, Type: sf.Type, Index: i}
		if sf.Type.Kind() == reflect.Pointer {
			info.Type, info.IsPointer = sf.Type.Elem(), true
		}
		fields = append(fields, info)
	}
	return fields
}

var globalReflectionCache = NewReflectionCache()
