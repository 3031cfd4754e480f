package diskutil

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kriansa/ntfs-mount/internal/execx"
	"github.com/kriansa/ntfs-mount/internal/log"
	"github.com/kriansa/ntfs-mount/internal/volume"
)

// PlistScanner reads the machine-readable property list emitted by
// `diskutil list -plist external` instead of the human-oriented table.
type PlistScanner struct {
	runner execx.Runner
}

// NewPlistScanner creates a scanner over diskutil's plist output.
func NewPlistScanner(runner execx.Runner) *PlistScanner {
	return &PlistScanner{runner: runner}
}

// ExternalNTFS runs `diskutil list -plist external` and walks
// AllDisksAndPartitions for NTFS partitions.
func (s *PlistScanner) ExternalNTFS(ctx context.Context) ([]volume.Candidate, error) {
	result, err := s.runner.Run(ctx, "diskutil", "list", "-plist", "external")
	if err != nil {
		return nil, fmt.Errorf("list external disks: %w", err)
	}

	root, err := decodePlist(strings.NewReader(result.Stdout))
	if err != nil {
		return nil, fmt.Errorf("decode diskutil plist: %w", err)
	}

	disks, _ := root["AllDisksAndPartitions"].([]any)
	var candidates []volume.Candidate
	for _, d := range disks {
		disk, ok := d.(map[string]any)
		if !ok {
			continue
		}
		partitions, _ := disk["Partitions"].([]any)
		for _, p := range partitions {
			part, ok := p.(map[string]any)
			if !ok {
				continue
			}
			if content, _ := part["Content"].(string); content != ContentNTFS {
				continue
			}
			deviceID, _ := part["DeviceIdentifier"].(string)
			if deviceID == "" {
				continue
			}
			label, _ := part["VolumeName"].(string)
			candidates = append(candidates, volume.Candidate{
				DeviceID: deviceID,
				Label:    label,
			})
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoVolumes
	}

	log.Debug("scanned external disks", "backend", "plist", "candidates", len(candidates))
	return candidates, nil
}

// decodePlist parses an Apple XML property list into nested Go values:
// dicts become map[string]any, arrays []any, and leaves string, int64 or
// bool. Only the subset of plist types diskutil emits is supported.
func decodePlist(r io.Reader) (map[string]any, error) {
	dec := xml.NewDecoder(r)

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("no dict found in plist: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local == "plist" {
			continue
		}
		if start.Name.Local != "dict" {
			return nil, fmt.Errorf("expected top-level dict, found <%s>", start.Name.Local)
		}
		return decodeDict(dec)
	}
}

func decodeDict(dec *xml.Decoder) (map[string]any, error) {
	dict := make(map[string]any)
	var key string

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "key" {
				if err := dec.DecodeElement(&key, &t); err != nil {
					return nil, err
				}
				continue
			}
			if key == "" {
				return nil, fmt.Errorf("plist value <%s> without a preceding key", t.Name.Local)
			}
			value, err := decodeValue(dec, t)
			if err != nil {
				return nil, err
			}
			dict[key] = value
			key = ""
		case xml.EndElement:
			return dict, nil
		}
	}
}

func decodeArray(dec *xml.Decoder) ([]any, error) {
	var items []any

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			value, err := decodeValue(dec, t)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		case xml.EndElement:
			return items, nil
		}
	}
}

func decodeValue(dec *xml.Decoder, start xml.StartElement) (any, error) {
	switch start.Name.Local {
	case "dict":
		return decodeDict(dec)
	case "array":
		return decodeArray(dec)
	case "string":
		var s string
		if err := dec.DecodeElement(&s, &start); err != nil {
			return nil, err
		}
		return s, nil
	case "integer":
		var s string
		if err := dec.DecodeElement(&s, &start); err != nil {
			return nil, err
		}
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	case "true":
		return true, dec.Skip()
	case "false":
		return false, dec.Skip()
	default:
		return nil, fmt.Errorf("unsupported plist element <%s>", start.Name.Local)
	}
}
