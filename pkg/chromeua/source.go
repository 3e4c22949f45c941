package chromeua

import (
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/macwinua/pkg/logger"
)

// Data is registry content as found in a data file. Both fields are optional;
// an absent field leaves that part of the registry unchanged.
//
//	agents:
//	  - [mac, "Mac OS X 14_0", "137", "Mozilla/5.0 (Macintosh; ...)"]
//	sec_ua:
//	  "136": '"Chromium";v="136", ...'
//
// Agents may also be written as mappings with exactly the platform,
// os_version, chrome_version and user_agent keys. Values follow the same
// rules as tuple elements.
type Data struct {
	Agents any `yaml:"agents" json:"agents"`
	SecUA  any `yaml:"sec_ua" json:"sec_ua"`
}

var errEmptyData = errors.New("data defines neither agents nor sec_ua")

// ParseData decodes YAML (or JSON, which YAML accepts) registry content.
func ParseData(b []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return Data{}, errors.Join(ErrReadData, err)
	}
	if d.Agents == nil && d.SecUA == nil {
		return Data{}, errors.Join(ErrReadData, errEmptyData)
	}
	agents, err := mappedAgents(d.Agents)
	if err != nil {
		return Data{}, err
	}
	d.Agents = agents
	return d, nil
}

// LoadFile reads and decodes a registry data file.
func LoadFile(path string) (Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Data{}, errors.Join(ErrReadData, err)
	}
	return ParseData(b)
}

// UpdateFromFile loads path and applies it with UpdateRaw.
func (c *ChromeUA) UpdateFromFile(path string) error {
	d, err := LoadFile(path)
	if err != nil {
		c.logger.Warn("chromeua data file unreadable", logger.Path(path), logger.Error(err))
		return err
	}
	return c.UpdateRaw(d.Agents, d.SecUA)
}

var agentKeys = [4]string{"platform", "os_version", "chrome_version", "user_agent"}

// mappedAgents rewrites agent entries written as mappings into tuples in
// field order, so that both forms are validated by the same rules.
// A mapping must use exactly the keys in agentKeys.
func mappedAgents(raw any) (any, error) {
	list, ok := raw.([]any)
	if !ok {
		return raw, nil
	}
	out := make([]any, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			out[i] = item
			continue
		}
		if len(m) != len(agentKeys) {
			return nil, mappingKeysError(i)
		}
		tuple := make([]any, len(agentKeys))
		for j, k := range agentKeys {
			v, ok := m[k]
			if !ok {
				return nil, mappingKeysError(i)
			}
			tuple[j] = v
		}
		out[i] = tuple
	}
	return out, nil
}

func mappingKeysError(i int) error {
	return newError(ErrValue, "Agent at index %d must have exactly the keys %s", i, strings.Join(agentKeys[:], ", "))
}
