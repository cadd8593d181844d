package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// KVEntry is one persisted JSON document, e.g. the settings or the history.
type KVEntry struct {
	ent.Schema
}

func (KVEntry) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			NotEmpty().
			Unique().
			Comment("Document name"),
		field.String("value").
			Comment("JSON document"),
		field.Int64("updated_at").
			Comment("Last write in unix milliseconds"),
	}
}
