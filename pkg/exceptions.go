package pkg

import "errors"

var (
	// Facade errors 🔑
	ErrVerificationFailed = errors.New("❌ artifact verification failed")
	ErrGeneratorClosed    = errors.New("❌ generator closed")
	ErrNoAlphabet         = errors.New("❌ complex diagrams need a value alphabet")
)
