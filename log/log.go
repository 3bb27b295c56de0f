package log

import "go.uber.org/zap"

// Logger is a no-op until EnsureLogger runs, so packages can log from tests
// without setup.
var Logger = zap.NewNop()

func EnsureLogger(production bool) {
	var err error
	if production {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
}
