package domain

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ActorRef identifies who recorded a status entry. Upstream systems send it
// in two wire shapes: a bare string name ("Budi Santoso") or a user object
// exposing a name field ({"id": "...", "name": "..."}). Both shapes decode
// into this struct; DisplayName returns the normalized display string.
type ActorRef struct {
	ID   string `json:"id,omitempty" bson:"id,omitempty"`
	Name string `json:"name,omitempty" bson:"name,omitempty"`
}

// DisplayName returns the human-readable actor name: the name field when
// present, otherwise the ID, otherwise the empty string.
func (a ActorRef) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.ID
}

// IsZero reports whether the reference is empty. Satisfies bsoncodec.Zeroer
// so omitempty works on the embedded struct.
func (a ActorRef) IsZero() bool {
	return a.ID == "" && a.Name == ""
}

// UnmarshalJSON accepts either a JSON string or a user object.
func (a *ActorRef) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		a.Name = s
		return nil
	}
	type plain ActorRef
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*a = ActorRef(obj)
	return nil
}

// UnmarshalBSONValue accepts either a BSON string or an embedded document,
// mirroring the JSON behaviour for records already persisted in either shape.
func (a *ActorRef) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null, bsontype.Undefined:
		return nil
	case bsontype.String:
		var s string
		if err := bson.UnmarshalValue(t, data, &s); err != nil {
			return err
		}
		a.Name = s
		return nil
	case bsontype.EmbeddedDocument:
		type plain ActorRef
		var obj plain
		if err := bson.UnmarshalValue(t, data, &obj); err != nil {
			return err
		}
		*a = ActorRef(obj)
		return nil
	default:
		return fmt.Errorf("actor: cannot decode BSON type %s", t)
	}
}
