package grpcserver

import (
	"tickmatch/api/pb"
	"tickmatch/domain/changelog"
)

func toWireEntry(e *changelog.Entry) *pb.ChangeLogEntry {
	return &pb.ChangeLogEntry{
		EntityId:   e.EntityID,
		EntityType: e.EntityType,
		Kind:       uint32(e.Kind),
		Fields:     toWireFields(e.Fields),
		Changed:    toWireFields(e.Changed),
		Timestamp:  e.Timestamp,
		Sequence:   e.Sequence,
	}
}

func toWireFields(fs []changelog.FieldChange) []*pb.FieldChange {
	if len(fs) == 0 {
		return nil
	}
	out := make([]*pb.FieldChange, len(fs))
	for i, f := range fs {
		out[i] = &pb.FieldChange{Name: f.Name, OldValue: f.OldValue, NewValue: f.NewValue}
	}
	return out
}
