package realtime

import (
	"encoding/json"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// ChangeEvent is a tagged notification of a remote insert, update or
// delete. New carries the record after the change, Old the record
// before it; DELETE events only carry Old, INSERT only New.
type ChangeEvent struct {
	Type      EventType       `json:"event_type"`
	Table     string          `json:"table"`
	SubjectID uuid.UUID       `json:"subject_id"`
	RecordID  uuid.UUID       `json:"record_id"`
	New       json.RawMessage `json:"new,omitempty"`
	Old       json.RawMessage `json:"old,omitempty"`
}

// DecodeNew unmarshals the event's new record into out.
func (ev ChangeEvent) DecodeNew(out any) error {
	if len(ev.New) == 0 {
		return nil
	}
	return json.Unmarshal(ev.New, out)
}

// DecodeOld unmarshals the event's old record into out.
func (ev ChangeEvent) DecodeOld(out any) error {
	if len(ev.Old) == 0 {
		return nil
	}
	return json.Unmarshal(ev.Old, out)
}
