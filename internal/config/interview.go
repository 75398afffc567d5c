package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Interview tunes question generation and scoring.
type Interview struct {
	QuestionCount int            `yaml:"question_count"`
	CategoryMix   map[string]int `yaml:"category_mix"`
	Temperature   float64        `yaml:"temperature"`
	MaxInputChars int            `yaml:"max_input_chars"`
}

func DefaultInterview() Interview {
	return Interview{
		QuestionCount: 8,
		CategoryMix: map[string]int{
			"technical":        4,
			"behavioral":       2,
			"company-specific": 2,
		},
		Temperature:   0.4,
		MaxInputChars: 20000,
	}
}

// LoadInterview reads interview settings from a YAML file. Fields left out of
// the file keep their defaults.
func LoadInterview(filename string) (*Interview, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read interview config %s: %w", filename, err)
	}

	var file struct {
		QuestionCount *int           `yaml:"question_count"`
		CategoryMix   map[string]int `yaml:"category_mix"`
		Temperature   *float64       `yaml:"temperature"`
		MaxInputChars *int           `yaml:"max_input_chars"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse interview config: %w", err)
	}

	iv := DefaultInterview()
	if file.QuestionCount != nil {
		iv.QuestionCount = *file.QuestionCount
	}
	if file.CategoryMix != nil {
		iv.CategoryMix = file.CategoryMix
	}
	if file.Temperature != nil {
		iv.Temperature = *file.Temperature
	}
	if file.MaxInputChars != nil {
		iv.MaxInputChars = *file.MaxInputChars
	}
	if err := iv.Validate(); err != nil {
		return nil, fmt.Errorf("invalid interview config: %w", err)
	}
	return &iv, nil
}

func (iv Interview) Validate() error {
	if iv.QuestionCount <= 0 {
		return fmt.Errorf("question_count must be greater than 0")
	}
	if iv.Temperature < 0 || iv.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if iv.MaxInputChars <= 0 {
		return fmt.Errorf("max_input_chars must be greater than 0")
	}

	total := 0
	for category, n := range iv.CategoryMix {
		switch category {
		case "technical", "behavioral", "company-specific":
		default:
			return fmt.Errorf("unknown category %q in category_mix", category)
		}
		if n < 0 {
			return fmt.Errorf("category_mix[%s] cannot be negative", category)
		}
		total += n
	}
	if len(iv.CategoryMix) > 0 && total != iv.QuestionCount {
		return fmt.Errorf("category_mix adds up to %d, question_count is %d", total, iv.QuestionCount)
	}
	return nil
}
