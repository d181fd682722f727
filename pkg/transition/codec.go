package transition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Plan Serialization API
// =============================================================================

// PlanFile is the on-disk form of a generated plan, carrying enough
// context to replay it without regenerating.
type PlanFile struct {
	Kind          Kind
	FrameDuration int64 // milliseconds
	Plan          Plan
}

// MarshalPlan converts a plan file to JSON bytes.
func MarshalPlan(p *PlanFile) ([]byte, error) {
	var buf bytes.Buffer
	if err := writePlanTo(p, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePlanFile writes a plan to a JSON file.
func WritePlanFile(p *PlanFile, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writePlanTo(p, f)
}

// WritePlan writes a plan as JSON to an io.Writer.
func WritePlan(p *PlanFile, w io.Writer) error {
	return writePlanTo(p, w)
}

// ReadPlanFile reads a JSON file and returns the decoded plan.
func ReadPlanFile(path string) (*PlanFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readPlanFrom(f)
}

// ReadPlan decodes a JSON plan from an io.Reader.
func ReadPlan(r io.Reader) (*PlanFile, error) {
	return readPlanFrom(r)
}

// =============================================================================
// Wire Format
// =============================================================================

type planJSON struct {
	Kind    string         `json:"kind"`
	FrameMS int64          `json:"frame_ms"`
	Steps   [][]changeJSON `json:"steps"`
}

type changeJSON struct {
	ID string `json:"id"`
	On bool   `json:"on"`
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writePlanTo(p *PlanFile, w io.Writer) error {
	out := planJSON{
		Kind:    p.Kind.String(),
		FrameMS: p.FrameDuration,
		Steps:   make([][]changeJSON, len(p.Plan)),
	}
	for i, step := range p.Plan {
		out.Steps[i] = make([]changeJSON, len(step))
		for j, c := range step {
			out.Steps[i][j] = changeJSON{ID: c.ID, On: c.On}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readPlanFrom(r io.Reader) (*PlanFile, error) {
	var data planJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	p := &PlanFile{
		Kind:          ParseKind(data.Kind),
		FrameDuration: data.FrameMS,
		Plan:          make(Plan, len(data.Steps)),
	}
	for i, step := range data.Steps {
		p.Plan[i] = make(Step, len(step))
		for j, c := range step {
			p.Plan[i][j] = Change{ID: c.ID, On: c.On}
		}
	}
	return p, nil
}
