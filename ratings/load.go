package ratings

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hoopsim/ratingfit/pkg/errors"
	"github.com/hoopsim/ratingfit/pkg/log"
	"gopkg.in/yaml.v3"
)

// playersDocument is the wrapped export form {"players": [...]}.
type playersDocument struct {
	Players []Player `json:"players" yaml:"players"`
}

// LoadPlayersJSON reads either a bare JSON array of players or an object
// with a "players" array.
func LoadPlayersJSON(r io.Reader) ([]Player, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read players")
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.NewModelError("ratings.LoadPlayersJSON", "empty document", errors.ErrEmptyData)
	}

	if trimmed[0] == '{' {
		var doc playersDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, errors.Wrap(err, "decode players")
		}
		return doc.Players, nil
	}

	var players []Player
	if err := json.Unmarshal(trimmed, &players); err != nil {
		return nil, errors.Wrap(err, "decode players")
	}
	return players, nil
}

// LoadPlayersYAML reads either a YAML sequence of players or a mapping with a
// "players" sequence.
func LoadPlayersYAML(r io.Reader) ([]Player, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.NewModelError("ratings.LoadPlayersYAML", "empty document", errors.ErrEmptyData)
		}
		return nil, errors.Wrap(err, "decode players")
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	if node.Kind == yaml.MappingNode {
		var doc playersDocument
		if err := node.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "decode players")
		}
		return doc.Players, nil
	}

	var players []Player
	if err := node.Decode(&players); err != nil {
		return nil, errors.Wrap(err, "decode players")
	}
	return players, nil
}

// CSV columns other than the ratings and the response.
const (
	csvPID      = "pid"
	csvSeason   = "season"
	csvPlayoffs = "playoffs"
	csvMinutes  = "min"
)

// LoadSamplesCSV reads flat sample rows with a header naming at least pid,
// season, min, the response and every key; a playoffs column is optional.
// Columns may appear in any order and extra columns are ignored.
//
// Rows are regrouped into players: each row is one stats row, and the first
// row seen for a (pid, season) supplies that season's ratings. Collect then
// applies the usual filters.
func LoadSamplesCSV(r io.Reader, keys []string, response string) ([]Player, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewModelError("ratings.LoadSamplesCSV", "missing header", errors.ErrEmptyData)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read csv header")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	required := append([]string{csvPID, csvSeason, csvMinutes, response}, keys...)
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, errors.NewValidationError(name, "column missing from csv header", header)
		}
	}
	playoffsCol, hasPlayoffs := index[csvPlayoffs]

	var players []Player
	byPID := make(map[int]int)
	seasons := make(map[[2]int]bool)

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read csv row")
		}
		line, _ := cr.FieldPos(0)

		num := func(col string) (float64, error) {
			raw := strings.TrimSpace(record[index[col]])
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return 0, errors.NewValidationError(col, fmt.Sprintf("line %d: not a number", line), raw)
			}
			return v, nil
		}

		pidF, err := num(csvPID)
		if err != nil {
			return nil, err
		}
		seasonF, err := num(csvSeason)
		if err != nil {
			return nil, err
		}
		minutes, err := num(csvMinutes)
		if err != nil {
			return nil, err
		}
		resp, err := num(response)
		if err != nil {
			return nil, err
		}

		playoffs := false
		if hasPlayoffs {
			raw := strings.TrimSpace(record[playoffsCol])
			if raw != "" {
				playoffs, err = strconv.ParseBool(raw)
				if err != nil {
					return nil, errors.NewValidationError(csvPlayoffs, fmt.Sprintf("line %d: not a boolean", line), raw)
				}
			}
		}

		pid, season := int(pidF), int(seasonF)
		pos, ok := byPID[pid]
		if !ok {
			pos = len(players)
			byPID[pid] = pos
			players = append(players, Player{PID: pid})
		}
		p := &players[pos]

		if !seasons[[2]int{pid, season}] {
			values := make(map[string]float64, len(keys))
			for _, k := range keys {
				v, err := num(k)
				if err != nil {
					return nil, err
				}
				values[k] = v
			}
			p.Ratings = append(p.Ratings, SeasonRatings{Season: season, Values: values})
			seasons[[2]int{pid, season}] = true
		}

		p.Stats = append(p.Stats, SeasonStats{
			Season:   season,
			Playoffs: playoffs,
			Minutes:  minutes,
			Values:   map[string]float64{response: resp},
		})
	}

	if len(players) == 0 {
		return nil, errors.NewModelError("ratings.LoadSamplesCSV", "no rows", errors.ErrEmptyData)
	}
	return players, nil
}

// LoadPlayersFile picks a loader from the file extension: .json, .yaml/.yml
// or .csv. keys and response name the CSV columns and are ignored otherwise.
func LoadPlayersFile(path string, keys []string, response string, logger log.Logger) ([]Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	var players []Player
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		players, err = LoadPlayersJSON(f)
	case ".yaml", ".yml":
		players, err = LoadPlayersYAML(f)
	case ".csv":
		players, err = LoadSamplesCSV(f, keys, response)
	default:
		return nil, errors.NewValidationError("input", "unsupported file extension "+ext, path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}

	if logger != nil {
		logger.Info("players loaded",
			log.OperationKey, log.OperationLoad,
			log.SourceKey, path,
			log.PlayersKey, len(players),
		)
	}
	return players, nil
}
