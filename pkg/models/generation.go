package models

import "fmt"

// GenerationConfig controls the shape of a generated tree. It is passed by
// value through every recursive call and never mutated.
type GenerationConfig struct {
	// ComplexityLevel scales the random part of the per-directory counts.
	ComplexityLevel float64 `yaml:"complexity_level" mapstructure:"complexity_level"`

	// MaxNestLevel caps directory depth; the game-root is depth 0.
	MaxNestLevel int `yaml:"max_nest_level" mapstructure:"max_nest_level"`

	MinimumFolders        int `yaml:"minimum_folders" mapstructure:"minimum_folders"`
	MinimumFilesPerFolder int `yaml:"minimum_files_per_folder" mapstructure:"minimum_files_per_folder"`

	// NestThreshold is the density gate for recursing into a new directory:
	// recursion happens when ComplexityLevel*U(0,1) exceeds it. Zero or less
	// disables the probability part of the gate.
	NestThreshold float64 `yaml:"nest_threshold" mapstructure:"nest_threshold"`
}

// DefaultGenerationConfig returns the stock game settings.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		ComplexityLevel:       1.3,
		MaxNestLevel:          5,
		MinimumFolders:        1,
		MinimumFilesPerFolder: 2,
		NestThreshold:         0.8,
	}
}

// Validate checks that every field is within range.
func (c GenerationConfig) Validate() error {
	if c.ComplexityLevel < 0 {
		return fmt.Errorf("complexity level cannot be negative: %v", c.ComplexityLevel)
	}
	if c.MaxNestLevel < 0 {
		return fmt.Errorf("max nest level cannot be negative: %d", c.MaxNestLevel)
	}
	if c.MinimumFolders < 0 {
		return fmt.Errorf("minimum folders cannot be negative: %d", c.MinimumFolders)
	}
	if c.MinimumFilesPerFolder < 0 {
		return fmt.Errorf("minimum files per folder cannot be negative: %d", c.MinimumFilesPerFolder)
	}
	return nil
}
