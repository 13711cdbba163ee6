package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/fractalview/internal/control"
)

type ExportData struct {
	Session SessionMetadata `json:"session"`
	Events  []ExportEvent   `json:"events"`
}

type ExportEvent struct {
	Kind    string  `json:"kind"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Delta   float64 `json:"delta,omitempty"`
	Variant string  `json:"variant,omitempty"`
}

// ExportJSON writes a session and its events as one JSON document.
func (s *Store) ExportJSON(w io.Writer, sessionID string) error {
	meta, err := s.Load(sessionID)
	if err != nil {
		return err
	}
	events, err := s.LoadEvents(sessionID)
	if err != nil {
		return err
	}

	data := ExportData{
		Session: *meta,
		Events:  make([]ExportEvent, 0, len(events)),
	}
	for _, ev := range events {
		data.Events = append(data.Events, exportEvent(ev))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func exportEvent(ev control.Event) ExportEvent {
	out := ExportEvent{Kind: ev.Kind()}
	switch e := ev.(type) {
	case control.PointerPressed:
		out.X, out.Y = e.X, e.Y
	case control.ScrollWheel:
		out.Delta = e.Delta
	case control.SwitchVariant:
		out.Variant = e.Variant.String()
	}
	return out
}
