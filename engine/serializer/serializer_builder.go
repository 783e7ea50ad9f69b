package serializer

import "log/slog"

// SerializerBuilderOption is a functional option for configuring a Serializer.
type SerializerBuilderOption func(*serializer)

// WithPrecision rounds every value to n decimals before encoding. A negative n disables rounding.
//
// Parameters:
//   - n: number of decimals
//
// Returns:
//   - SerializerBuilderOption: option function to apply
func WithPrecision(n int) SerializerBuilderOption {
	return func(s *serializer) {
		if n < 0 {
			n = -1
		}
		s.precision = n
	}
}

// WithCreateDirs makes WriteFile create missing parent directories of the destination.
//
// Parameters:
//   - enabled: if true, parent directories are created with mode 0755
//
// Returns:
//   - SerializerBuilderOption: option function to apply
func WithCreateDirs(enabled bool) SerializerBuilderOption {
	return func(s *serializer) {
		s.createDirs = enabled
	}
}

// WithLogger sets the structured logger.
//
// Parameters:
//   - logger: the logger; nil keeps slog.Default()
//
// Returns:
//   - SerializerBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) SerializerBuilderOption {
	return func(s *serializer) {
		s.logger = logger
	}
}
