package auth

import (
	"encoding/json"
	"fmt"
	"os"
)

// CompanyEntry is one registered company in the ICE registry file.
type CompanyEntry struct {
	ICE       string  `json:"ice"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CompanyRegistry resolves ICE numbers presented at registration. An account
// registering with a listed ICE becomes a company and inherits its location.
type CompanyRegistry struct {
	byICE map[string]CompanyEntry
}

// LoadCompanyRegistry reads the registry JSON file
// ({"valid_ices": [{ice, latitude, longitude}, ...]}).
func LoadCompanyRegistry(path string) (*CompanyRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read company registry: %w", err)
	}

	var file struct {
		ValidICEs []CompanyEntry `json:"valid_ices"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse company registry: %w", err)
	}

	reg := &CompanyRegistry{byICE: make(map[string]CompanyEntry, len(file.ValidICEs))}
	for _, e := range file.ValidICEs {
		reg.byICE[e.ICE] = e
	}
	return reg, nil
}

// Lookup returns the registry entry for an ICE number, if registered.
func (r *CompanyRegistry) Lookup(ice string) (CompanyEntry, bool) {
	e, ok := r.byICE[ice]
	return e, ok
}
