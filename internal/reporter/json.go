package reporter

import (
	"bytes"
	"encoding/json"

	"github.com/noah-isme/school-scheduler/internal/models"
)

// RenderJSON serializes the schedule in the stable interchange shape.
func RenderJSON(schedule *models.Schedule) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(schedule); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
