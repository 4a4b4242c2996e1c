package track

import "encoding/json"

// Config is a track configuration, or a genome descriptor when FastaURL is
// set. Keys this package does not model are kept in Attributes so that
// configurations read from JSON files reach the browser intact.
type Config struct {
	Name        string
	Filename    string
	Format      string
	Type        string
	FeatureType string
	URL         string
	IndexURL    string
	Indexed     *bool
	FastaURL    string

	Attributes map[string]interface{}
}

// Genome returns a reference genome descriptor.
func Genome(fastaURL, indexURL string) Config {
	return Config{FastaURL: fastaURL, IndexURL: indexURL}
}

// IsGenome reports whether c describes a reference genome rather than a track.
func (c Config) IsGenome() bool {
	return c.FastaURL != ""
}

// SetIndexed records whether the data file is read through an index.
func (c *Config) SetIndexed(indexed bool) {
	c.Indexed = &indexed
}

var stringKeys = []string{"name", "filename", "format", "type", "featureType", "url", "indexURL", "fastaURL"}

func (c *Config) stringFields() map[string]*string {
	return map[string]*string{
		"name":        &c.Name,
		"filename":    &c.Filename,
		"format":      &c.Format,
		"type":        &c.Type,
		"featureType": &c.FeatureType,
		"url":         &c.URL,
		"indexURL":    &c.IndexURL,
		"fastaURL":    &c.FastaURL,
	}
}

func (c Config) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(c.Attributes)+len(stringKeys)+1)
	for k, v := range c.Attributes {
		out[k] = v
	}

	fields := c.stringFields()
	for _, key := range stringKeys {
		if v := *fields[key]; v != "" {
			out[key] = v
		}
	}

	if c.Indexed != nil {
		out["indexed"] = *c.Indexed
	}

	return json.Marshal(out)
}

func (c *Config) UnmarshalJSON(data []byte) error {
	raw := make(map[string]interface{})
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = Config{}
	fields := c.stringFields()
	for _, key := range stringKeys {
		// A non-string value under a known key is not ours to interpret
		if s, ok := raw[key].(string); ok {
			*fields[key] = s
			delete(raw, key)
		}
	}

	if b, ok := raw["indexed"].(bool); ok {
		c.SetIndexed(b)
		delete(raw, "indexed")
	}

	if len(raw) > 0 {
		c.Attributes = raw
	}

	return nil
}
