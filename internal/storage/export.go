package storage

import (
	"encoding/json"
	"io"

	"github.com/go-gl/mathgl/mgl64"
)

type ExportData struct {
	RunMetadata
	Times     []float64      `json:"times"`
	Energies  []float64      `json:"energies"`
	Positions [][]mgl64.Vec3 `json:"positions"`
}

// ExportJSON writes a stored run as a single JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	times, positions, err := s.LoadStates(runID)
	if err != nil {
		return err
	}
	_, energies, err := s.LoadEnergy(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Times:       times,
		Energies:    energies,
		Positions:   positions,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
