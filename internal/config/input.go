package config

import (
	"fmt"
	"os"

	"github.com/fiscalio/fiscalio/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of request files: a fiscal profile for a
// calculation, optionally bundled with an optimization context.
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// Request is the on-disk shape of a calculation or optimization
// request. The profile is required; the context only matters for
// optimization and defaults to nil.
type Request struct {
	Profile *domain.FiscalProfile       `yaml:"profile"`
	Context *domain.OptimizationContext `yaml:"context"`
}

// LoadFromFile loads and validates a request from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*Request, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse builds a validated request from YAML bytes
func (ip *InputParser) Parse(data []byte) (*Request, error) {
	var req Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateRequest(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ValidateRequest validates the loaded request
func (ip *InputParser) ValidateRequest(req *Request) error {
	if req.Profile == nil {
		return &domain.ValidationError{Field: "profile", Reason: "profile is required"}
	}
	if err := req.Profile.Validate(); err != nil {
		return err
	}
	if req.Context != nil {
		if err := req.Context.Validate(); err != nil {
			return err
		}
	}
	return nil
}
