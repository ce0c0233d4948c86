package script

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ivlev/animator/internal/interp"
)

// CurrentVersion is the schema version written by Marshal. Documents without
// a version field are treated as the pre-versioned layout and migrated.
const CurrentVersion = 1

type document struct {
	Version         int      `json:"version"`
	Title           string   `json:"title"`
	Duration        float64  `json:"duration"`
	FramesPerSecond float64  `json:"framesPerSecond"`
	Actions         []record `json:"actions"`
}

// record is the flat wire form of every action kind. Reference keys keep the
// names older scripts used.
type record struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Kind          string  `json:"kind,omitempty"`
	Class         string  `json:"class,omitempty"`
	StartTime     float64 `json:"startTime"`
	EndTime       float64 `json:"endTime"`
	Interpolation string  `json:"interpolation,omitempty"`

	StartTransformID  string `json:"startTransformID,omitempty"`
	EndTransformID    string `json:"endTransformID,omitempty"`
	TargetTransformID string `json:"targetTransformID,omitempty"`

	ReferenceCameraID string   `json:"referenceCameraID,omitempty"`
	TargetCameraID    string   `json:"targetCameraID,omitempty"`
	DegreesPerSecond  *float64 `json:"degreesPerSecond,omitempty"`

	StartROIID  string `json:"startROIID,omitempty"`
	EndROIID    string `json:"endROIID,omitempty"`
	TargetROIID string `json:"targetROIID,omitempty"`

	StartVolumePropertyID  string `json:"startVolumePropertyID,omitempty"`
	EndVolumePropertyID    string `json:"endVolumePropertyID,omitempty"`
	TargetVolumePropertyID string `json:"targetVolumePropertyID,omitempty"`
}

type rawDocument struct {
	Version         *int            `json:"version"`
	Title           string          `json:"title"`
	Duration        *float64        `json:"duration"`
	FramesPerSecond *float64        `json:"framesPerSecond"`
	FPS             *float64        `json:"fps"`
	Actions         json.RawMessage `json:"actions"`
}

// Marshal encodes the script as indented JSON.
func Marshal(s *Script) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal decodes a script, accepting both the keyed and the list form of
// "actions" and "fps" as an alias of "framesPerSecond".
func Unmarshal(data []byte) (*Script, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}

	if raw.Version != nil && (*raw.Version < 0 || *raw.Version > CurrentVersion) {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidScript, *raw.Version)
	}
	if raw.Duration == nil {
		return nil, fmt.Errorf("%w: missing duration", ErrInvalidScript)
	}
	fps := raw.FramesPerSecond
	if fps == nil {
		fps = raw.FPS
	}
	if fps == nil {
		return nil, fmt.Errorf("%w: missing framesPerSecond", ErrInvalidScript)
	}

	s, err := New(raw.Title, *raw.Duration, *fps)
	if err != nil {
		return nil, err
	}

	records, err := decodeActions(raw.Actions)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		a, err := r.action()
		if err != nil {
			return nil, err
		}
		if err := s.AddAction(a); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MarshalJSON implements json.Marshaler.
func (s *Script) MarshalJSON() ([]byte, error) {
	doc := document{
		Version:         CurrentVersion,
		Title:           s.Title,
		Duration:        s.duration,
		FramesPerSecond: s.fps,
		Actions:         make([]record, 0, len(s.order)),
	}
	for _, a := range s.Actions() {
		doc.Actions = append(doc.Actions, newRecord(a))
	}
	return json.Marshal(doc)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Script) UnmarshalJSON(data []byte) error {
	decoded, err := Unmarshal(data)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

func decodeActions(raw json.RawMessage) ([]record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var records []record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("%w: actions: %v", ErrInvalidScript, err)
		}
		return records, nil
	case '{':
		return decodeKeyedActions(trimmed)
	default:
		return nil, fmt.Errorf("%w: actions must be a list or an object", ErrInvalidScript)
	}
}

// decodeKeyedActions reads an id-keyed object in document order.
func decodeKeyedActions(data []byte) ([]record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: actions: %v", ErrInvalidScript, err)
	}

	var records []record
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: actions: %v", ErrInvalidScript, err)
		}
		key, _ := tok.(string)

		var r record
		if err := dec.Decode(&r); err != nil {
			return nil, fmt.Errorf("%w: action %q: %v", ErrInvalidScript, key, err)
		}
		if r.ID == "" {
			r.ID = key
		}
		records = append(records, r)
	}
	return records, nil
}

func newRecord(a Action) record {
	h := a.Common()
	r := record{
		ID:            h.ID,
		Name:          h.Name,
		Kind:          string(a.Kind()),
		StartTime:     h.StartTime,
		EndTime:       h.EndTime,
		Interpolation: string(h.Interpolation),
	}

	switch v := a.(type) {
	case Translation:
		r.StartTransformID = v.StartTransform
		r.EndTransformID = v.EndTransform
		r.TargetTransformID = v.TargetTransform
	case CameraRotation:
		dps := v.DegreesPerSecond
		r.ReferenceCameraID = v.ReferenceCamera
		r.TargetCameraID = v.TargetCamera
		r.DegreesPerSecond = &dps
	case ROI:
		r.StartROIID = v.StartROI
		r.EndROIID = v.EndROI
		r.TargetROIID = v.TargetROI
	case VolumeProperty:
		r.StartVolumePropertyID = v.StartProperty
		r.EndVolumePropertyID = v.EndProperty
		r.TargetVolumePropertyID = v.TargetProperty
	}
	return r
}

func (r record) action() (Action, error) {
	name := r.Kind
	if name == "" {
		name = r.Class
	}
	kind, err := ParseKind(name)
	if err != nil {
		return nil, fmt.Errorf("action %q: %w", r.ID, err)
	}

	mode, err := interp.ParseMode(r.Interpolation)
	if err != nil {
		return nil, fmt.Errorf("%w: action %q: %v", ErrInvalidAction, r.ID, err)
	}

	h := Header{
		ID:            r.ID,
		Name:          r.Name,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Interpolation: mode,
	}

	switch kind {
	case KindTranslation:
		return Translation{
			Header:          h,
			StartTransform:  r.StartTransformID,
			EndTransform:    r.EndTransformID,
			TargetTransform: r.TargetTransformID,
		}, nil
	case KindCameraRotation:
		a := CameraRotation{
			Header:          h,
			ReferenceCamera: r.ReferenceCameraID,
			TargetCamera:    r.TargetCameraID,
		}
		if r.DegreesPerSecond != nil {
			a.DegreesPerSecond = *r.DegreesPerSecond
		}
		return a, nil
	case KindROI:
		return ROI{
			Header:    h,
			StartROI:  r.StartROIID,
			EndROI:    r.EndROIID,
			TargetROI: r.TargetROIID,
		}, nil
	case KindVolumeProperty:
		return VolumeProperty{
			Header:         h,
			StartProperty:  r.StartVolumePropertyID,
			EndProperty:    r.EndVolumePropertyID,
			TargetProperty: r.TargetVolumePropertyID,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownActionKind, name)
}
