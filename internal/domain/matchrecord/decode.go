package matchrecord

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
)

var ErrEmptyPayload = errors.New("empty match record payload")

// DecodeData decodes a record payload. The store keeps either a JSON object or
// a JSON string holding the encoded object, so one level of string wrapping is
// unwrapped first.
func DecodeData(raw []byte) (MatchData, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return MatchData{}, ErrEmptyPayload
	}

	if raw[0] == '"' {
		var inner string
		if err := sonic.Unmarshal(raw, &inner); err != nil {
			return MatchData{}, fmt.Errorf("decode wrapped payload: %w", err)
		}
		raw = bytes.TrimSpace([]byte(inner))
		if len(raw) == 0 {
			return MatchData{}, ErrEmptyPayload
		}
	}

	var out MatchData
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return MatchData{}, fmt.Errorf("decode payload: %w", err)
	}
	return out, nil
}

// Parse decodes a record and resolves both team names. The boolean is false
// when the payload cannot be decoded; list callers skip such rows.
func Parse(record Record) (Parsed, bool) {
	data, err := DecodeData(record.Data)
	if err != nil {
		return Parsed{}, false
	}

	homeName, homeFrom := ResolveTeamName(data, SideHome)
	awayName, awayFrom := ResolveTeamName(data, SideAway)
	return Parsed{
		Record:       record,
		Data:         data,
		HomeTeamName: homeName,
		AwayTeamName: awayName,
		HomeNameFrom: homeFrom,
		AwayNameFrom: awayFrom,
	}, true
}

// ParseAll decodes records in order and drops the undecodable ones.
func ParseAll(records []Record) []Parsed {
	out := make([]Parsed, 0, len(records))
	for _, record := range records {
		parsed, ok := Parse(record)
		if !ok {
			continue
		}
		out = append(out, parsed)
	}
	return out
}
