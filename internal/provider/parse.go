package provider

import (
	"strconv"

	"github.com/doctornein/dynasty-tokens/internal/model"
)

// parseGameLog maps one loose provider row onto the normalized entry.
// The provider is inconsistent about numeric types (numbers, strings, or
// absent), so every stat field defaults to zero instead of erroring; one
// bad row must never poison a whole scan.
func parseGameLog(m map[string]interface{}) model.GameLogEntry {
	return model.GameLogEntry{
		Date:         asString(m["date"]),
		Opponent:     asString(m["opponent"]),
		OpponentAbbr: asString(m["opponentAbbr"]),
		IsHome:       asBool(m["isHome"]),
		Min:          asString(m["min"]),
		Pts:          asInt(m["pts"]),
		Reb:          asInt(m["reb"]),
		Ast:          asInt(m["ast"]),
		Stl:          asInt(m["stl"]),
		Blk:          asInt(m["blk"]),
		Turnover:     asInt(m["turnover"]),
		FgPct:        asFloat(m["fgPct"]),
		Fg3Pct:       asFloat(m["fg3Pct"]),
		Result:       asString(m["result"]),
	}
}

func asSlice(v interface{}) []interface{} {
	s, _ := v.([]interface{})
	return s
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func asInt(v interface{}) int {
	switch t := v.(type) {
	case float64: // encoding/json decodes all JSON numbers as float64
		return int(t)
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func asFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
