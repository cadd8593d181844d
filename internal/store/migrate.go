package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entschema "entgo.io/ent/dialect/sql/schema"

	"github.com/abhisek/algoquiz/ent/schema"
)

// tableDef binds an ent schema to its table name and primary key column.
type tableDef struct {
	name   string
	pk     string
	schema ent.Interface
}

var tableDefs = []tableDef{
	{name: kvTable, pk: "key", schema: schema.KVEntry{}},
	{name: eventsTable, pk: "sequence", schema: schema.QuizEvent{}},
}

// migrate creates the tables and indexes described by the ent schemas.
// The migration is append-only: existing tables and data are kept.
func migrate(ctx context.Context, drv dialect.Driver) error {
	tables := make([]*entschema.Table, 0, len(tableDefs))
	for _, t := range tableDefs {
		tbl, err := t.table()
		if err != nil {
			return fmt.Errorf("table %s: %w", t.name, err)
		}
		tables = append(tables, tbl)
	}

	m, err := entschema.NewMigrate(drv, entschema.WithForeignKeys(false))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// table converts the ent schema of t into a migration table.
func (t tableDef) table() (*entschema.Table, error) {
	fields, indexes := collect(t.schema)
	tbl := entschema.NewTable(t.name)

	var hasPK bool
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, d.Err
		}
		col := &entschema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Nullable: d.Optional,
			Unique:   d.Unique,
			Default:  d.Default,
			Comment:  d.Comment,
		}
		if d.Name == t.pk {
			col.Unique = false
			tbl.AddPrimary(col)
			hasPK = true
			continue
		}
		tbl.AddColumn(col)
	}
	if !hasPK {
		return nil, fmt.Errorf("primary key column %q not in schema", t.pk)
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		name := t.name + "_" + strings.Join(d.Fields, "_")
		tbl.AddIndex(name, d.Unique, d.Fields)
	}
	return tbl, nil
}

// collect returns the schema fields and indexes, mixins first.
func collect(s ent.Interface) ([]ent.Field, []ent.Index) {
	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	return append(fields, s.Fields()...), append(indexes, s.Indexes()...)
}
