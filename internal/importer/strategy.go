package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrUnknownStrategy is returned for unsupported version strategies.
var ErrUnknownStrategy = errors.New("unknown version strategy")

// VersionStrategy selects the part of a semantic version that is
// incremented for new object versions.
type VersionStrategy string

// Supported version strategies.
const (
	StrategyMajor VersionStrategy = "MAJOR"
	StrategyMinor VersionStrategy = "MINOR"
	StrategyPatch VersionStrategy = "PATCH"
)

// ParseStrategy parses the strategy name, ignoring case.
func ParseStrategy(name string) (VersionStrategy, error) {
	vs := VersionStrategy(strings.ToUpper(strings.TrimSpace(name)))

	switch vs {
	case StrategyMajor, StrategyMinor, StrategyPatch:
		return vs, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Next returns the version following the given one. Pre-release and
// build metadata are dropped.
func (vs VersionStrategy) Next(version string) (string, error) {
	v := semver.Canonical("v" + strings.TrimPrefix(version, "v"))
	if v == "" {
		return "", fmt.Errorf("invalid semantic version %q", version)
	}

	v = strings.TrimSuffix(v, semver.Prerelease(v))

	parts := strings.SplitN(strings.TrimPrefix(v, "v"), ".", 3)

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return "", fmt.Errorf("invalid semantic version %q: %w", version, err)
		}

		nums[i] = n
	}

	switch vs {
	case StrategyMajor:
		nums = []int{nums[0] + 1, 0, 0}
	case StrategyMinor:
		nums = []int{nums[0], nums[1] + 1, 0}
	case StrategyPatch:
		nums[2]++
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, string(vs))
	}

	return fmt.Sprintf("%d.%d.%d", nums[0], nums[1], nums[2]), nil
}
