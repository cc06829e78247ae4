// Package ratings turns player rating histories into a regression of a season
// stat (PER by default) on the individual ratings.
//
// A sample is one ratings season matched to a stats row for the same season
// with enough minutes played. The fitted coefficients say how much each rating
// is worth in units of the response stat.
package ratings

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/hoopsim/ratingfit/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultRatingKeys are the player ratings regressed on, in output order.
var DefaultRatingKeys = []string{
	"hgt", "stre", "spd", "jmp", "endu", "ins", "dnk", "ft",
	"fg", "tp", "oiq", "diq", "drb", "pss", "reb",
}

const (
	// DefaultResponse is the stat the ratings are regressed against.
	DefaultResponse = "per"

	// DefaultMinMinutes is the minutes floor. Only rows strictly above it count.
	DefaultMinMinutes = 500.0

	// DefaultScale multiplies coefficients for display.
	DefaultScale = 100.0
)

// Player is one player's rating and stats history.
type Player struct {
	PID     int             `json:"pid" yaml:"pid"`
	Name    string          `json:"name,omitempty" yaml:"name,omitempty"`
	Ratings []SeasonRatings `json:"ratings" yaml:"ratings"`
	Stats   []SeasonStats   `json:"stats" yaml:"stats"`
}

// SeasonRatings holds a player's ratings for one season. On the wire it is a
// flat object: {"season": 2021, "hgt": 45, "stre": 60, ...}.
type SeasonRatings struct {
	Season int
	Values map[string]float64
}

// SeasonStats holds one stats row. Regular season and playoffs are separate
// rows for the same season. On the wire it is flat like SeasonRatings with
// reserved "season", "playoffs" and "min" fields.
type SeasonStats struct {
	Season   int
	Playoffs bool
	Minutes  float64
	Values   map[string]float64
}

func (r SeasonRatings) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.fields())
}

func (r *SeasonRatings) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "decode ratings season")
	}
	return r.fromFields(raw)
}

func (r SeasonRatings) MarshalYAML() (interface{}, error) {
	return r.fields(), nil
}

func (r *SeasonRatings) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]interface{}
	if err := node.Decode(&raw); err != nil {
		return errors.Wrapf(err, "decode ratings season at line %d", node.Line)
	}
	return r.fromFields(raw)
}

func (r SeasonRatings) fields() map[string]interface{} {
	out := make(map[string]interface{}, len(r.Values)+1)
	for k, v := range r.Values {
		out[k] = v
	}
	out["season"] = r.Season
	return out
}

func (r *SeasonRatings) fromFields(raw map[string]interface{}) error {
	season, err := seasonField(raw)
	if err != nil {
		return err
	}
	values := numericFields(raw, "season")
	*r = SeasonRatings{Season: season, Values: values}
	return nil
}

func (s SeasonStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.fields())
}

func (s *SeasonStats) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "decode stats row")
	}
	return s.fromFields(raw)
}

func (s SeasonStats) MarshalYAML() (interface{}, error) {
	return s.fields(), nil
}

func (s *SeasonStats) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]interface{}
	if err := node.Decode(&raw); err != nil {
		return errors.Wrapf(err, "decode stats row at line %d", node.Line)
	}
	return s.fromFields(raw)
}

func (s SeasonStats) fields() map[string]interface{} {
	out := make(map[string]interface{}, len(s.Values)+3)
	for k, v := range s.Values {
		out[k] = v
	}
	out["season"] = s.Season
	out["playoffs"] = s.Playoffs
	out["min"] = s.Minutes
	return out
}

func (s *SeasonStats) fromFields(raw map[string]interface{}) error {
	season, err := seasonField(raw)
	if err != nil {
		return err
	}

	var playoffs bool
	if v, ok := raw["playoffs"]; ok && v != nil {
		b, ok := v.(bool)
		if !ok {
			return errors.NewValidationError("playoffs", "must be a boolean", v)
		}
		playoffs = b
	}

	var minutes float64
	if v, ok := raw["min"]; ok {
		f, ok := toFloat(v)
		if !ok {
			return errors.NewValidationError("min", "must be a number", v)
		}
		minutes = f
	}

	values := numericFields(raw, "season", "playoffs", "min")
	*s = SeasonStats{Season: season, Playoffs: playoffs, Minutes: minutes, Values: values}
	return nil
}

func seasonField(raw map[string]interface{}) (int, error) {
	v, ok := raw["season"]
	if !ok {
		return 0, errors.NewValidationError("season", "is required", nil)
	}
	f, ok := toFloat(v)
	if !ok || f != float64(int(f)) {
		return 0, errors.NewValidationError("season", "must be an integer", v)
	}
	return int(f), nil
}

// numericFields collects every numeric field not named in skip. Non-numeric
// extras (names, team abbreviations) are ignored.
func numericFields(raw map[string]interface{}, skip ...string) map[string]float64 {
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		if slices.Contains(skip, k) {
			continue
		}
		if f, ok := toFloat(v); ok {
			out[k] = f
		}
	}
	return out
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func (p Player) label() string {
	if p.Name != "" {
		return fmt.Sprintf("player %d (%s)", p.PID, p.Name)
	}
	return fmt.Sprintf("player %d", p.PID)
}
