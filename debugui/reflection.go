package debugui

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// FieldInfo describes one editable field of a settings struct.
type FieldInfo struct {
	Name  string
	Key   string
	Type  reflect.Type
	Index int
}

// ReflectionCache memoizes the editable fields of struct types.
type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

// GetFields returns the exported scalar fields of t in declaration order.
// Key is the json name of the field when it has one.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() || !editable(field.Type.Kind()) {
				continue
			}
			key := field.Name
			if tag, _, _ := strings.Cut(field.Tag.Get("json"), ","); tag != "" && tag != "-" {
				key = tag
			}
			fields = append(fields, FieldInfo{
				Name:  field.Name,
				Key:   key,
				Type:  field.Type,
				Index: i,
			})
		}
	}

	rc.fieldCache[t] = fields
	return fields
}

func editable(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

var globalReflectionCache = NewReflectionCache()

// SetField assigns value to the field named key (json name or Go name) of
// the struct target points to, converting between numeric kinds.
func SetField(target any, key string, value any) error {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("set %s: target must be a pointer to a struct, got %T", key, target)
	}
	val = val.Elem()

	for _, f := range globalReflectionCache.GetFields(val.Type()) {
		if f.Key != key && f.Name != key {
			continue
		}
		field := val.Field(f.Index)
		in := reflect.ValueOf(value)

		switch field.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if !in.CanInt() && !in.CanFloat() {
				return fmt.Errorf("set %s: cannot use %T as integer", key, value)
			}
			field.SetInt(toInt(in))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n := toInt(in)
			if (!in.CanInt() && !in.CanUint() && !in.CanFloat()) || n < 0 {
				return fmt.Errorf("set %s: cannot use %v as unsigned integer", key, value)
			}
			field.SetUint(uint64(n))
		case reflect.Float32, reflect.Float64:
			switch {
			case in.CanFloat():
				field.SetFloat(in.Float())
			case in.CanInt():
				field.SetFloat(float64(in.Int()))
			default:
				return fmt.Errorf("set %s: cannot use %T as float", key, value)
			}
		case reflect.Bool:
			if in.Kind() != reflect.Bool {
				return fmt.Errorf("set %s: cannot use %T as bool", key, value)
			}
			field.SetBool(in.Bool())
		case reflect.String:
			if in.Kind() != reflect.String {
				return fmt.Errorf("set %s: cannot use %T as string", key, value)
			}
			field.SetString(in.String())
		}
		return nil
	}
	return fmt.Errorf("set %s: no such field on %s", key, val.Type())
}

func toInt(v reflect.Value) int64 {
	switch {
	case v.CanInt():
		return v.Int()
	case v.CanUint():
		return int64(v.Uint())
	case v.CanFloat():
		return int64(v.Float())
	}
	return 0
}
