package gcp

import (
	"errors"
	"fmt"
	"strings"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/Lllllllleong/contentstatusflow/internal/models"
	"github.com/googleapis/google-cloudevents-go/cloud/firestoredata"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// FirestoreWrittenEventType is the CloudEvent type Eventarc emits for document writes.
const FirestoreWrittenEventType = "google.cloud.firestore.document.v1.written"

var (
	// ErrEmptyPayload is returned for events that carry no data at all.
	ErrEmptyPayload = errors.New("event has no data payload")
	// ErrUnwatchedDocument is returned when the event refers to a document
	// outside the bound collection, such as a subcollection document.
	ErrUnwatchedDocument = errors.New("document is not watched by this trigger")
)

// DecodeChangeEvent converts a Firestore document CloudEvent into a ChangeEvent
// for a document matched by path.
func DecodeChangeEvent(e cloudevents.Event, path models.DocumentPath) (*models.ChangeEvent, error) {
	var data firestoredata.DocumentEventData
	if err := unmarshalEventData(e, &data); err != nil {
		return nil, err
	}

	docPath := documentPath(e.Subject(), &data)
	documentID, ok := path.Match(docPath)
	if !ok {
		return nil, fmt.Errorf("%w: %q does not match %s", ErrUnwatchedDocument, docPath, path)
	}

	event := &models.ChangeEvent{DocumentID: documentID}
	if data.GetOldValue() != nil {
		event.Before = fieldsFromProto(data.GetOldValue().GetFields())
	}
	if data.GetValue() != nil {
		event.After = fieldsFromProto(data.GetValue().GetFields())
	}
	return event, nil
}

func unmarshalEventData(e cloudevents.Event, data *firestoredata.DocumentEventData) error {
	raw := e.Data()
	if len(raw) == 0 {
		return ErrEmptyPayload
	}
	if strings.HasPrefix(e.DataContentType(), "application/json") {
		if err := (protojson.UnmarshalOptions{DiscardUnknown: true}).Unmarshal(raw, data); err != nil {
			return fmt.Errorf("protojson.Unmarshal: %w", err)
		}
		return nil
	}
	if err := proto.Unmarshal(raw, data); err != nil {
		return fmt.Errorf("proto.Unmarshal: %w", err)
	}
	return nil
}

// documentPath returns the document path relative to the database root,
// preferring the event subject ("documents/content/abc") and falling back to
// the resource name carried in the payload.
func documentPath(subject string, data *firestoredata.DocumentEventData) string {
	if rest, ok := strings.CutPrefix(subject, "documents/"); ok {
		return rest
	}
	for _, doc := range []*firestoredata.Document{data.GetValue(), data.GetOldValue()} {
		if doc == nil {
			continue
		}
		if _, rest, ok := strings.Cut(doc.GetName(), "/documents/"); ok {
			return rest
		}
	}
	return ""
}

func fieldsFromProto(in map[string]*firestoredata.Value) models.Fields {
	out := make(models.Fields, len(in))
	for k, v := range in {
		out[k] = valueFromProto(v)
	}
	return out
}

func valueFromProto(v *firestoredata.Value) any {
	switch x := v.GetValueType().(type) {
	case *firestoredata.Value_NullValue:
		return nil
	case *firestoredata.Value_BooleanValue:
		return x.BooleanValue
	case *firestoredata.Value_IntegerValue:
		return x.IntegerValue
	case *firestoredata.Value_DoubleValue:
		return x.DoubleValue
	case *firestoredata.Value_TimestampValue:
		return x.TimestampValue.AsTime()
	case *firestoredata.Value_StringValue:
		return x.StringValue
	case *firestoredata.Value_BytesValue:
		return x.BytesValue
	case *firestoredata.Value_ReferenceValue:
		return x.ReferenceValue
	case *firestoredata.Value_GeoPointValue:
		return x.GeoPointValue
	case *firestoredata.Value_ArrayValue:
		values := x.ArrayValue.GetValues()
		out := make([]any, len(values))
		for i, item := range values {
			out[i] = valueFromProto(item)
		}
		return out
	case *firestoredata.Value_MapValue:
		return map[string]any(fieldsFromProto(x.MapValue.GetFields()))
	default:
		return nil
	}
}
