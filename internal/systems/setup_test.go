package systems

import (
	"os"
	"testing"

	"roguely-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Глобальный логгер нужен системам до запуска тестов.
	logger.Init()

	os.Exit(m.Run())
}
