package usecase

import "github.com/riskibarqy/match-analyzer/internal/platform/tracing"

var spans = tracing.NewScope("match-analyzer/internal/usecase", "usecase.", nil)
