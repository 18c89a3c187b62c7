package version

import (
	"fmt"
	"runtime"
	"time"
)

// Заполняются через -ldflags "-X roguely-server/internal/version.BuildDate=...".
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
)

// buildEpoch - день нулевой сборки.
var buildEpoch = time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC)

// Info - метаданные сборки для /version и стартового лога.
type Info struct {
	BuildID   int    `json:"build_id"`
	BuildDate string `json:"build_date,omitempty"`
	Commit    string `json:"commit,omitempty"`
	Branch    string `json:"branch,omitempty"`
	GoVersion string `json:"go_version"`
	Error     string `json:"error,omitempty"`
}

// CalculateBuildID - число дней от buildEpoch до BuildDate.
func CalculateBuildID() (int, error) {
	if BuildDate == "" {
		return 0, fmt.Errorf("build date is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", BuildDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", BuildDate, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("build date %s is before epoch", BuildDate)
	}

	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

func Current() Info {
	info := Info{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		GoVersion: runtime.Version(),
	}

	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.BuildID = id
	return info
}

func (i Info) String() string {
	if i.Error != "" {
		return fmt.Sprintf("roguely dev build (%s, %s)", i.GoVersion, i.Error)
	}
	return fmt.Sprintf("roguely build %d (%s) commit[%s] branch[%s] %s",
		i.BuildID, i.BuildDate, orUnknown(i.Commit), orUnknown(i.Branch), i.GoVersion)
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
