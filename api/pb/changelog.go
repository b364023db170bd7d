// Package pb holds the wire messages for the change log and the admin
// query service. The messages are written in the legacy generated
// style so the protobuf runtime derives their descriptors from struct
// tags; regenerating from a .proto file would produce the same wire
// format.
package pb

import (
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/protoadapt"
)

type FieldChange struct {
	Name     string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	OldValue string `protobuf:"bytes,2,opt,name=old_value,json=oldValue,proto3" json:"old_value,omitempty"`
	NewValue string `protobuf:"bytes,3,opt,name=new_value,json=newValue,proto3" json:"new_value,omitempty"`
}

func (m *FieldChange) Reset()         { *m = FieldChange{} }
func (m *FieldChange) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*FieldChange) ProtoMessage()    {}

type ChangeLogEntry struct {
	EntityId   string         `protobuf:"bytes,1,opt,name=entity_id,json=entityId,proto3" json:"entity_id,omitempty"`
	EntityType string         `protobuf:"bytes,2,opt,name=entity_type,json=entityType,proto3" json:"entity_type,omitempty"`
	Kind       uint32         `protobuf:"varint,3,opt,name=kind,proto3" json:"kind,omitempty"`
	Fields     []*FieldChange `protobuf:"bytes,4,rep,name=fields,proto3" json:"fields,omitempty"`
	Changed    []*FieldChange `protobuf:"bytes,5,rep,name=changed,proto3" json:"changed,omitempty"`
	Timestamp  uint64         `protobuf:"varint,6,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	Sequence   uint64         `protobuf:"varint,7,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *ChangeLogEntry) Reset()         { *m = ChangeLogEntry{} }
func (m *ChangeLogEntry) String() string { return prototext.Format(protoadapt.MessageV2Of(m)) }
func (*ChangeLogEntry) ProtoMessage()    {}

// Marshal encodes a message in protobuf wire format.
func Marshal(m protoadapt.MessageV1) ([]byte, error) {
	return proto.Marshal(protoadapt.MessageV2Of(m))
}

// Unmarshal decodes protobuf wire format into m.
func Unmarshal(data []byte, m protoadapt.MessageV1) error {
	return proto.Unmarshal(data, protoadapt.MessageV2Of(m))
}
