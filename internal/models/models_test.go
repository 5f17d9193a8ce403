package models

import (
	"encoding/json"
	"testing"
)

func TestTimestamp(t *testing.T) {
	tc := []struct {
		name string
		raw  string
		zero bool
		year int
	}{
		{name: "rfc3339", raw: `"2024-03-05T10:00:00Z"`, year: 2024},
		{name: "iso without zone", raw: `"2023-11-02T08:15:00"`, year: 2023},
		{name: "sql datetime", raw: `"2022-01-09 12:00:00"`, year: 2022},
		{name: "http date", raw: `"Tue, 05 Mar 2024 10:00:00 GMT"`, year: 2024},
		{name: "null", raw: `null`, zero: true},
		{name: "garbage", raw: `"not a date"`, zero: true},
		{name: "number", raw: `12`, zero: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.raw), &ts); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tt.zero {
				if !ts.IsZero() {
					t.Errorf("expected zero time, got %v", ts.Time)
				}
				return
			}
			if ts.Year() != tt.year {
				t.Errorf("expected year %d, got %d", tt.year, ts.Year())
			}
		})
	}
}

func TestPlaylistDecoding(t *testing.T) {
	body := `{"playlist_no":7,"user_no":3,"title":"Workout","content":"loud","created_at":"2024-01-01T00:00:00Z",
		"music_items":[{"music_no":11,"title":"A","artist":"X","album_image_url":"http://img/a","duration_ms":185000},
		{"music_no":null,"title":"B","artist":"Y"}]}`

	var p Playlist
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if p.ID != 7 || p.Title != "Workout" || p.Description != "loud" {
		t.Errorf("unexpected playlist %+v", p)
	}
	if len(p.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(p.Tracks))
	}
	if !p.Tracks[0].Persisted() || *p.Tracks[0].ID != 11 {
		t.Errorf("expected first track to be persisted with id 11")
	}
	if p.Tracks[1].Persisted() {
		t.Error("expected second track to have no persisted id")
	}
}

func TestResult(t *testing.T) {
	t.Run("Ok", func(t *testing.T) {
		r := Ok(Created{ID: 4})
		if !r.Success || r.Value().ID != 4 {
			t.Errorf("unexpected result %+v", r)
		}
	})

	t.Run("Fail", func(t *testing.T) {
		r := Fail[Created]("nope")
		if r.Success || r.Message != "nope" {
			t.Errorf("unexpected result %+v", r)
		}
		if r.Value().ID != 0 {
			t.Error("expected zero value for failed result")
		}
	})

	t.Run("Void Success Without Data", func(t *testing.T) {
		var r Result[struct{}]
		if err := json.Unmarshal([]byte(`{"success":true,"message":"deleted"}`), &r); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !r.Success || r.Data != nil {
			t.Errorf("unexpected result %+v", r)
		}
	})
}

func TestRole(t *testing.T) {
	if RoleAdmin.String() != "admin" || RoleMember.String() != "member" || Role(9).String() != "unknown" {
		t.Error("unexpected role names")
	}
}
