package iovocab

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/vocab"
)

type iovocab struct {
	cfg *config.Config
}

func New(cfg *config.Config) vocab.Vocab {
	res := iovocab{cfg: cfg}
	return &res
}

func (v *iovocab) Load() (*vocab.Vocabulary, error) {
	vocabPath := config.VocabFilePath(v.cfg.HomeDir)
	voc, err := loadVocabConfig(vocabPath)
	if err != nil {
		return nil, VocabConfigError(vocabPath, err)
	}
	for _, w := range voc.Warnings {
		slog.Warn("Vocabulary gap",
			"field", w.Field,
			"problem", w.Message,
			"suggestion", w.Suggestion,
		)
	}
	return voc, nil
}

// loadVocabConfig reads vocab.yaml from path, parses it, and checks
// the result is usable for discovery and sync.
func loadVocabConfig(path string) (*vocab.Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocab file: %w", err)
	}

	var voc vocab.Vocabulary
	if err = yaml.Unmarshal(data, &voc); err != nil {
		return nil, fmt.Errorf("failed to parse vocab file: %w", err)
	}

	if err = voc.Validate(); err != nil {
		return nil, err
	}
	return &voc, nil
}
