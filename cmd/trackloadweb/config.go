package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/carbocation/pfx"
	"github.com/carbocation/trackload"
)

type JSONConfig struct {
	ConfigPath       string `json:"-"`
	Port             int    `json:"port"`
	RegistryPath     string `json:"registry"`
	HistoryDB        string `json:"history_db"`
	DriveCredentials string `json:"drive_credentials"`
	DriveAPIKey      string `json:"drive_key"`
	GoogleStorage    bool   `json:"google_storage"`
	RequestTimeout   int    `json:"request_timeout_seconds"`
}

func (c JSONConfig) Timeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return 60 * time.Second
	}

	return time.Duration(c.RequestTimeout) * time.Second
}

func ParseJSONConfigFromPath(path string) (JSONConfig, error) {
	out := JSONConfig{ConfigPath: path, Port: 9019}

	f, err := os.Open(trackload.ExpandHome(path))
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(&out)
	if err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}

		return out, pfx.Err(err)
	}

	// Interpret ~ if present
	out.ConfigPath = trackload.ExpandHome(out.ConfigPath)
	out.HistoryDB = trackload.ExpandHome(out.HistoryDB)
	out.DriveCredentials = trackload.ExpandHome(out.DriveCredentials)
	if !trackload.IsGoogleStorage(out.RegistryPath) {
		out.RegistryPath = trackload.ExpandHome(out.RegistryPath)
	}

	return out, nil
}
