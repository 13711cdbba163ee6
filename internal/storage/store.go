package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/fractalview/internal/config"
	"github.com/san-kum/fractalview/internal/control"
	"github.com/san-kum/fractalview/internal/escape"
)

var ErrCorruptSession = errors.New("storage: corrupt session")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// SessionMetadata describes a recorded exploration. Config is the state the
// first event was applied to.
type SessionMetadata struct {
	ID        string             `json:"id"`
	Variant   string             `json:"variant"`
	Timestamp time.Time          `json:"timestamp"`
	Events    int                `json:"events"`
	Config    config.Config      `json:"config"`
	Metrics   map[string]float64 `json:"metrics"`
}

var eventHeader = []string{
	"seq", "kind", "x", "y", "delta", "variant",
	"real_origin", "imag_origin", "real_span", "imag_span", "elapsed_ms",
}

func (s *Store) Save(cfg *config.Config, records []control.Record, metrics map[string]float64) (string, error) {
	now := time.Now()
	sessionID := fmt.Sprintf("%s_%d", cfg.Variant, now.UnixNano())
	sessionDir := filepath.Join(s.baseDir, sessionID)

	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return "", err
	}

	meta := SessionMetadata{
		ID:        sessionID,
		Variant:   cfg.Variant,
		Timestamp: now,
		Events:    len(records),
		Config:    *cfg,
		Metrics:   metrics,
	}

	metaFile, err := os.Create(filepath.Join(sessionDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(sessionDir, "events.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(eventHeader); err != nil {
		return "", err
	}
	for _, rec := range records {
		if err := w.Write(encodeRecord(rec)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return sessionID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func encodeRecord(rec control.Record) []string {
	row := make([]string, len(eventHeader))
	row[0] = strconv.Itoa(rec.Seq)
	row[1] = rec.Event.Kind()

	switch e := rec.Event.(type) {
	case control.PointerPressed:
		row[2] = formatFloat(e.X)
		row[3] = formatFloat(e.Y)
	case control.ScrollWheel:
		row[4] = formatFloat(e.Delta)
	case control.SwitchVariant:
		row[5] = e.Variant.String()
	}

	vp := rec.Viewport
	row[6] = formatFloat(vp.RealOrigin)
	row[7] = formatFloat(vp.ImagOrigin)
	row[8] = formatFloat(vp.RealSpan)
	row[9] = formatFloat(vp.ImagSpan)
	row[10] = strconv.FormatFloat(float64(rec.Elapsed)/float64(time.Millisecond), 'f', 3, 64)
	return row
}

func decodeEvent(record []string) (control.Event, error) {
	if len(record) < 6 {
		return nil, fmt.Errorf("%w: short row %v", ErrCorruptSession, record)
	}

	parse := func(i int) (float64, error) {
		v, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: column %s: %v", ErrCorruptSession, eventHeader[i], err)
		}
		return v, nil
	}

	switch record[1] {
	case control.KindPointer:
		x, err := parse(2)
		if err != nil {
			return nil, err
		}
		y, err := parse(3)
		if err != nil {
			return nil, err
		}
		return control.PointerPressed{X: x, Y: y}, nil
	case control.KindScroll:
		d, err := parse(4)
		if err != nil {
			return nil, err
		}
		return control.ScrollWheel{Delta: d}, nil
	case control.KindReset:
		return control.ResetView{}, nil
	case control.KindVariant:
		v, err := escape.ParseVariant(record[5])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSession, err)
		}
		return control.SwitchVariant{Variant: v}, nil
	}
	return nil, fmt.Errorf("%w: event kind %q", ErrCorruptSession, record[1])
}

func (s *Store) List() ([]SessionMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SessionMetadata{}, nil
		}
		return nil, err
	}

	sessions := make([]SessionMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		sessions = append(sessions, *meta)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Timestamp.Before(sessions[j].Timestamp)
	})
	return sessions, nil
}

func (s *Store) Load(sessionID string) (*SessionMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, sessionID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta SessionMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadEvents returns the recorded events in dispatch order.
func (s *Store) LoadEvents(sessionID string) ([]control.Event, error) {
	file, err := os.Open(filepath.Join(s.baseDir, sessionID, "events.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []control.Event{}, nil
	}

	events := make([]control.Event, 0, len(records)-1)
	for _, record := range records[1:] {
		ev, err := decodeEvent(record)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}
