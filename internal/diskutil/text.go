package diskutil

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kriansa/ntfs-mount/internal/execx"
	"github.com/kriansa/ntfs-mount/internal/log"
	"github.com/kriansa/ntfs-mount/internal/volume"
)

// TextScanner parses the human-readable output of `diskutil list
// external`. The layout of the partition lines is treated as an explicit
// contract: a line that names the NTFS type but deviates from the
// expected shape is a ParseError rather than a silently skipped or
// misread entry.
type TextScanner struct {
	runner execx.Runner
}

// NewTextScanner creates a scanner over diskutil's tabular output.
func NewTextScanner(runner execx.Runner) *TextScanner {
	return &TextScanner{runner: runner}
}

// ParseError describes a diskutil line that matched the NTFS type marker
// but did not follow the expected column layout.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected diskutil output (%s): %q", e.Reason, e.Line)
}

// ExternalNTFS runs `diskutil list external` and extracts every NTFS
// partition line.
func (s *TextScanner) ExternalNTFS(ctx context.Context) ([]volume.Candidate, error) {
	result, err := s.runner.Run(ctx, "diskutil", "list", "external")
	if err != nil {
		return nil, fmt.Errorf("list external disks: %w", err)
	}

	candidates, err := parseList(result.Stdout)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoVolumes
	}

	log.Debug("scanned external disks", "backend", "text", "candidates", len(candidates))
	return candidates, nil
}

// deviceIDPattern matches partition identifiers such as disk3s1.
var deviceIDPattern = regexp.MustCompile(`^disk\d+(s\d+)+$`)

// sizeUnits are the units diskutil prints in the SIZE column.
var sizeUnits = map[string]bool{
	"B": true, "KB": true, "MB": true, "GB": true, "TB": true, "PB": true,
}

// parseList extracts NTFS partitions from diskutil list output.
//
// A partition line looks like:
//
//	1:    Windows_NTFS Windows HD     500.1 GB   disk3s1
//
// After the type marker the contract is: optional label tokens, then a
// size value, a size unit and the trailing device identifier. Violations
// fail loudly so a diskutil format change never turns into a misparse.
func parseList(output string) ([]volume.Candidate, error) {
	var candidates []volume.Candidate

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()

		fields := strings.Fields(line)
		marker := -1
		for i, f := range fields {
			if f == ContentNTFS {
				marker = i
				break
			}
		}
		if marker < 0 {
			continue
		}

		// Need at least size value, unit and device id after the marker.
		tail := fields[marker+1:]
		if len(tail) < 3 {
			return nil, &ParseError{Line: line, Reason: "too few columns after partition type"}
		}

		deviceID := tail[len(tail)-1]
		unit := tail[len(tail)-2]
		size := strings.TrimPrefix(tail[len(tail)-3], "*")

		if !deviceIDPattern.MatchString(deviceID) {
			return nil, &ParseError{Line: line, Reason: "trailing token is not a partition identifier"}
		}
		if !sizeUnits[unit] {
			return nil, &ParseError{Line: line, Reason: "missing size unit column"}
		}
		if _, err := strconv.ParseFloat(size, 64); err != nil {
			return nil, &ParseError{Line: line, Reason: "missing size value column"}
		}

		label := strings.Join(tail[:len(tail)-3], " ")

		candidates = append(candidates, volume.Candidate{
			DeviceID: deviceID,
			Label:    label,
		})
	}

	return candidates, nil
}
