package ingest

import "testing"

func TestSplitDocument(t *testing.T) {
	cases := []struct {
		body  string
		count int
		ok    bool
	}{
		{`{"url":"a.bed"}`, 1, true},
		{`  [{"url":"a.bed"},{"url":"b.bed"}]`, 2, true},
		{`[]`, 0, false},
		{``, 0, false},
		{`[{"url":`, 0, false},
	}

	for _, c := range cases {
		raws, err := splitDocument([]byte(c.body))
		if (err == nil) != c.ok {
			t.Errorf("%q: expected ok=%v, got error %v", c.body, c.ok, err)
			continue
		}
		if len(raws) != c.count {
			t.Errorf("%q: expected %d documents, got %d", c.body, c.count, len(raws))
		}
	}
}

func TestIsSession(t *testing.T) {
	session := jsonSlot{objects: []map[string]interface{}{{"reference": map[string]interface{}{"fastaURL": "x.fa"}}}}
	if !session.isSession() {
		t.Error("A document with a reference key is a session")
	}

	tracks := jsonSlot{objects: []map[string]interface{}{{"url": "a.bed"}}}
	if tracks.isSession() {
		t.Error("A track descriptor is not a session")
	}
}
