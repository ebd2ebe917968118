// meta/meta.go
package meta

// Workers defines the number of goroutines running trials.
const Workers = 8

// Trials defines the default number of fights per batch.
const Trials = 2000

// MaxRounds caps a single fight; fights that cannot progress end as a stalemate.
const MaxRounds = 1000

// LogLevel is the default CLI log level.
const LogLevel = "info"
