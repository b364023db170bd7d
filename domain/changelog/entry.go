package changelog

// Kind classifies a change log entry. The set is closed: replay code
// switches over it exhaustively.
type Kind uint8

const (
	Created Kind = iota + 1
	Updated
	Deleted
)

func (k Kind) String() string {
	switch k {
	case Created:
		return "CREATED"
	case Updated:
		return "UPDATED"
	case Deleted:
		return "DELETED"
	default:
		return "UNKNOWN"
	}
}

// FieldChange records one field transition. Values are carried as
// strings: numeric fields hold their decimal rendering, string fields
// are unquoted.
type FieldChange struct {
	Name     string
	OldValue string
	NewValue string
}

// Entry is one element of an entity's append-only change stream.
//
// Fields is populated for Created entries (the full initial field
// map), Changed for Updated entries. Deleted carries neither.
// Sequence is strictly increasing per entity stream.
type Entry struct {
	EntityID   string
	EntityType string
	Kind       Kind
	Fields     []FieldChange
	Changed    []FieldChange
	Timestamp  uint64
	Sequence   uint64
}

// Field returns the named field from a Created entry, or false when
// the entry does not carry it.
func (e *Entry) Field(name string) (FieldChange, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldChange{}, false
}

// NewCreated builds a Created entry from an entity's full field map.
func NewCreated(entityID, entityType string, fields []FieldChange, ts, seq uint64) *Entry {
	return &Entry{
		EntityID:   entityID,
		EntityType: entityType,
		Kind:       Created,
		Fields:     fields,
		Timestamp:  ts,
		Sequence:   seq,
	}
}

// NewUpdated builds an Updated entry from a diff.
func NewUpdated(entityID, entityType string, changed []FieldChange, ts, seq uint64) *Entry {
	return &Entry{
		EntityID:   entityID,
		EntityType: entityType,
		Kind:       Updated,
		Changed:    changed,
		Timestamp:  ts,
		Sequence:   seq,
	}
}

// NewDeleted builds a Deleted entry.
func NewDeleted(entityID, entityType string, ts, seq uint64) *Entry {
	return &Entry{
		EntityID:   entityID,
		EntityType: entityType,
		Kind:       Deleted,
		Timestamp:  ts,
		Sequence:   seq,
	}
}
