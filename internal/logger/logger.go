package logger

import "go.uber.org/zap"

// New builds the process-wide sugared logger. Callers own the final Sync.
func New() (*zap.SugaredLogger, error) {
	lg, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return lg.Sugar(), nil
}
