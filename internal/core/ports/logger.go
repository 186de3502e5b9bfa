package ports

// Logger defines the structured logging sink. It is purely observational
// and never influences control flow.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(err error, args ...any)

	// Metric records a named numeric observation.
	Metric(name string, value float64, args ...any)
}
