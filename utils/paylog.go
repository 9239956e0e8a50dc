package utils

import (
	"go.uber.org/zap"
)

// PayLog is the structured sink for payment lifecycle events: initiation,
// webhook receipt, hash verification failures, reconciliation outcomes.
// Initialized once in main via InitPaymentLogger and safe to use before that
// (falls back to a no-op logger).
var PayLog = zap.NewNop()

// InitPaymentLogger wires the process-wide payment event logger. Development
// mode gets human-readable console output, production gets JSON.
func InitPaymentLogger(development bool) error {
	var (
		l   *zap.Logger
		err error
	)
	if development {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	PayLog = l.Named("payments")
	return nil
}
