package ml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/service"
)

// LoadEncodingTable reads a versioned encoding table from a YAML file.
func LoadEncodingTable(path string) (service.EncodingTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return service.EncodingTable{}, fmt.Errorf("%w: failed to read encoding table %s: %v",
			model.ErrArtifactUnavailable, path, err)
	}

	var table service.EncodingTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return service.EncodingTable{}, fmt.Errorf("%w: %s: %v", model.ErrArtifactCorrupt, path, err)
	}
	return table, nil
}
