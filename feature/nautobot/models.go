package nautobot

import (
	"fmt"
	"reflect"

	"inventory-sync/core/inventory"

	"gorm.io/gorm"
)

// Reference is one edge of the reference graph between target rows.
type Reference struct {
	ID       uint   `gorm:"primaryKey"`
	FromType string `gorm:"column:from_type;size:32;index:idx_reference_from"`
	FromKey  string `gorm:"column:from_key;size:512;index:idx_reference_from"`
	ToType   string `gorm:"column:to_type;size:32;index:idx_reference_to"`
	ToKey    string `gorm:"column:to_key;size:512;index:idx_reference_to"`
}

// TableName overrides the table name.
func (Reference) TableName() string { return "inventory_references" }

type tabler interface {
	TableName() string
}

// newModel returns a pointer to a zero value of the model of t.
func newModel(t inventory.Type) (reflect.Value, error) {
	m, ok := inventory.Model(t)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return reflect.New(reflect.TypeOf(m)), nil
}

// tableName returns the table of t.
func tableName(t inventory.Type) (string, error) {
	m, ok := inventory.Model(t)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	return m.(tabler).TableName(), nil
}

// rowOf copies e into a new addressable model value with its bookkeeping set.
func rowOf(e inventory.Entity, key string) reflect.Value {
	v := reflect.ValueOf(e)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	ptr.Elem().FieldByName("ID").SetUint(0)
	ptr.Elem().FieldByName("NaturalKey").SetString(key)
	return ptr
}

func entityOf(ptr reflect.Value) inventory.Entity {
	return ptr.Elem().Interface().(inventory.Entity)
}

// Tables returns every table the store manages, references last.
func Tables() []string {
	out := make([]string, 0, len(inventory.Order)+1)
	for _, m := range inventory.Models() {
		out = append(out, m.(tabler).TableName())
	}
	return append(out, Reference{}.TableName())
}

// Schema returns a pointer to a zero value of every persisted model, for migrations
// and schema inspection.
func Schema() []any {
	out := make([]any, 0, len(inventory.Order)+1)
	for _, m := range inventory.Models() {
		out = append(out, reflect.New(reflect.TypeOf(m)).Interface())
	}
	return append(out, &Reference{})
}

// Columns returns the columns every managed table is expected to carry, keyed by table.
func Columns(db *gorm.DB) (map[string][]string, error) {
	out := make(map[string][]string, len(inventory.Order)+1)
	for _, m := range Schema() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", m, err)
		}
		out[stmt.Schema.Table] = append([]string(nil), stmt.Schema.DBNames...)
	}
	return out, nil
}
