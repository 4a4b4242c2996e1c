package main

import (
	"encoding/json"
	"net/http"
)

func JSONError(h *handler, w http.ResponseWriter, r *http.Request, err error, code ...int) {
	usedCode := http.StatusInternalServerError
	if len(code) > 0 {
		usedCode = code[0]
	}
	h.log.Println(r.Host, r.URL.Path, ":", usedCode, err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(usedCode)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{
		false,
		err.Error(),
	})
}

func writeJSON(h *handler, w http.ResponseWriter, r *http.Request, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		h.log.Println(r.Host, r.URL.Path, ":", err)
	}
}
