package helpers

import "os"

// Stage constants define the possible deployment/runtime environments.
const (
	StageProd  = "prod"
	StageDev   = "dev"
	StageLocal = "local"
)

// GetStage returns the configured deployment stage, defaulting to local.
func GetStage() string {
	stage := os.Getenv("STAGE")
	if !IsValidStage(stage) {
		return StageLocal
	}
	return stage
}

// IsValidStage checks if the provided stage string is one of the defined valid stages.
func IsValidStage(stage string) bool {
	switch stage {
	case StageProd, StageDev, StageLocal:
		return true
	default:
		return false
	}
}
