package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/sim"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Preset      string             `json:"preset"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Ticks       int                `json:"ticks"`
	Collided    bool               `json:"collided"`
	CollisionAt float64            `json:"collision_at,omitempty"`
	IdleAt      float64            `json:"idle_at,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// TraceRow is one line of trace.csv.
type TraceRow struct {
	Tick       int         `json:"tick"`
	Time       float64     `json:"time"`
	Phase      string      `json:"phase"`
	Separation float64     `json:"separation"`
	A          dynamo.Vec3 `json:"a"`
	B          dynamo.Vec3 `json:"b"`
	Particles  int         `json:"particles"`
}

var traceHeader = []string{"tick", "time", "phase", "separation", "ax", "ay", "az", "bx", "by", "bz", "particles"}

func NewMetadata(preset string, seed int64, cfg sim.Config, result *sim.Result) RunMetadata {
	return RunMetadata{
		Preset:      preset,
		Seed:        seed,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Ticks:       result.Ticks,
		Collided:    result.Collided,
		CollisionAt: result.CollisionAt,
		IdleAt:      result.IdleAt,
		Metrics:     result.Metrics,
	}
}

// Save writes the run under a fresh id and returns the id.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Preset, now.UnixMilli())
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = now
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteTrace(csvFile, result.Frames); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// WriteTrace writes frames as CSV with a header row.
func WriteTrace(out io.Writer, frames []sim.Frame) error {
	rows := make([]TraceRow, len(frames))
	for i, f := range frames {
		rows[i] = RowFromFrame(f)
	}
	return WriteRows(out, rows)
}

func WriteRows(out io.Writer, rows []TraceRow) error {
	w := csv.NewWriter(out)
	if err := w.Write(traceHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(traceRecord(r)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func RowFromFrame(f sim.Frame) TraceRow {
	return TraceRow{
		Tick:       f.Tick,
		Time:       f.Time,
		Phase:      f.Phase.String(),
		Separation: f.Separation,
		A:          f.A,
		B:          f.B,
		Particles:  f.Particles,
	}
}

func traceRecord(r TraceRow) []string {
	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	return []string{
		strconv.Itoa(r.Tick),
		ff(r.Time),
		r.Phase,
		ff(r.Separation),
		ff(r.A.X), ff(r.A.Y), ff(r.A.Z),
		ff(r.B.X), ff(r.B.Y), ff(r.B.Z),
		strconv.Itoa(r.Particles),
	}
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTrace(runID string) ([]TraceRow, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadTrace(file)
}

// ReadTrace parses CSV written by WriteTrace. Malformed rows are skipped.
func ReadTrace(in io.Reader) ([]TraceRow, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []TraceRow{}, nil
	}

	rows := make([]TraceRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) != len(traceHeader) {
			continue
		}
		row, err := parseRow(rec)
		if err != nil {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (TraceRow, error) {
	var row TraceRow
	var err error
	if row.Tick, err = strconv.Atoi(rec[0]); err != nil {
		return row, err
	}
	if row.Particles, err = strconv.Atoi(rec[10]); err != nil {
		return row, err
	}
	row.Phase = rec[2]

	vals := make([]float64, 0, 8)
	for _, i := range []int{1, 3, 4, 5, 6, 7, 8, 9} {
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return row, err
		}
		vals = append(vals, v)
	}
	row.Time = vals[0]
	row.Separation = vals[1]
	row.A = dynamo.Vec3{X: vals[2], Y: vals[3], Z: vals[4]}
	row.B = dynamo.Vec3{X: vals[5], Y: vals[6], Z: vals[7]}
	return row, nil
}
