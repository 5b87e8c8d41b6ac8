package runtimeconfig

import (
	"errors"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejectsMissingDirs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source.Dir = " "
	if err := cfg.Validate(); !errors.Is(err, ErrSourceDirRequired) {
		t.Errorf("expected ErrSourceDirRequired, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Output.Dir = ""
	if err := cfg.Validate(); !errors.Is(err, ErrOutputDirRequired) {
		t.Errorf("expected ErrOutputDirRequired, got %v", err)
	}
}

func TestValidateRejectsOverlappingIndexLetters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Index.Buckets = []IndexBucketConfig{
		{Name: "ABC", Letters: "ABC"},
		{Name: "CDE", Letters: "CDE"},
	}
	if err := cfg.Validate(); !errors.Is(err, ErrIndexLetterReused) {
		t.Errorf("expected ErrIndexLetterReused, got %v", err)
	}
}

func TestValidateRejectsBadBuckets(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Index.Buckets = append(cfg.Index.Buckets, IndexBucketConfig{Name: "", Letters: ""})
	if err := cfg.Validate(); !errors.Is(err, ErrIndexBucketInvalid) {
		t.Errorf("expected ErrIndexBucketInvalid, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Index.Buckets[0].Capacity = -1
	if err := cfg.Validate(); !errors.Is(err, ErrIndexCapacityInvalid) {
		t.Errorf("expected ErrIndexCapacityInvalid, got %v", err)
	}
}

func TestValidateRejectsBadDamping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stats.EnablePageRank = true
	cfg.Stats.Damping = 1.5
	if err := cfg.Validate(); !errors.Is(err, ErrStatsDampingInvalid) {
		t.Errorf("expected ErrStatsDampingInvalid, got %v", err)
	}

	// Zero means "use the default", never an error.
	cfg.Stats.Damping = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero damping should validate: %v", err)
	}
}

func TestValidateRejectsBadLogging(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "chatty"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingLevelInvalid) {
		t.Errorf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, ErrLoggingFormatInvalid) {
		t.Errorf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}
