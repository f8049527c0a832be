package store

import (
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/careerpath/ent/schema"
)

// Table names for the event types.
const (
	TableAttemptEvents    = "attempt_events"
	TableAnswerEvents     = "answer_events"
	TableResultEvents     = "result_events"
	TableLLMRequestEvents = "llm_request_events"
)

var entities = []struct {
	table  string
	schema ent.Interface
}{
	{TableAttemptEvents, entschema.AttemptEvent{}},
	{TableAnswerEvents, entschema.AnswerEvent{}},
	{TableResultEvents, entschema.ResultEvent{}},
	{TableLLMRequestEvents, entschema.LLMRequestEvent{}},
}

// Tables builds the migration tables from the ent schema definitions.
func Tables() ([]*schema.Table, error) {
	tables := make([]*schema.Table, 0, len(entities))
	for _, e := range entities {
		t, err := tableFor(e.table, e.schema)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", e.table, err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// tableFor converts an ent schema (mixins first) into a migration table with
// an auto-increment id primary key.
func tableFor(name string, s ent.Interface) (*schema.Table, error) {
	t := schema.NewTable(name).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("field: %w", d.Err)
		}
		col := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Size:     int64(d.Size),
			Unique:   d.Unique,
			Nullable: d.Optional,
			Comment:  d.Comment,
		}
		if d.StorageKey != "" {
			col.Name = d.StorageKey
		}
		// Function defaults such as time.Now are applied on insert.
		if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
			col.Default = d.Default
		}
		t.AddColumn(col)
	}

	for _, i := range indexes {
		d := i.Descriptor()
		if len(d.Fields) == 0 {
			continue
		}
		for _, c := range d.Fields {
			if !t.HasColumn(c) {
				return nil, fmt.Errorf("index on unknown column %q", c)
			}
		}
		idxName := d.StorageKey
		if idxName == "" {
			idxName = strings.ReplaceAll(name, "_", "") + "_" + strings.Join(d.Fields, "_")
		}
		t.AddIndex(idxName, d.Unique, d.Fields)
	}
	return t, nil
}
