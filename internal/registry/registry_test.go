package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/sketch-arcade/internal/gamespec"
)

func specFactory(doc string) Factory {
	return func() (*gamespec.GameSpec, error) {
		return gamespec.Parse([]byte(doc))
	}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("test-dots", specFactory(`{"title": "Dots", "initialState": {"n": 1}, "update": "", "draw": ""}`))

	if !Exists("test-dots") {
		t.Fatal("Exists() should report a registered sketch")
	}

	a, err := Create("test-dots")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	b, err := Create("test-dots")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if a == b {
		t.Error("Create() should return a fresh spec each call")
	}
	a.InitialState["n"] = 99
	if b.InitialState["n"] == 99 {
		t.Error("specs from Create() share state")
	}

	found := false
	for _, info := range List() {
		if info.ID == "test-dots" {
			found = true
			if info.Title != "Dots" {
				t.Errorf("title = %q, want Dots", info.Title)
			}
		}
	}
	if !found {
		t.Error("List() is missing the registered sketch")
	}
}

func TestListSorted(t *testing.T) {
	Register("test-zz", specFactory(`{"initialState": {}, "update": "", "draw": ""}`))
	Register("test-aa", specFactory(`{"initialState": {}, "update": "", "draw": ""}`))

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does-not-exist"); err == nil {
		t.Error("Create() should fail for an unknown ID")
	}
	if Exists("does-not-exist") {
		t.Error("Exists() should be false for an unknown ID")
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		factory Factory
		want    string
	}{
		{
			name:    "duplicate",
			id:      "test-dup",
			factory: specFactory(`{"initialState": {}, "update": "", "draw": ""}`),
			want:    "already registered",
		},
		{
			name: "broken factory",
			id:   "test-broken",
			factory: func() (*gamespec.GameSpec, error) {
				return nil, errors.New("bad embed")
			},
			want: "bad embed",
		},
	}

	Register("test-dup", specFactory(`{"initialState": {}, "update": "", "draw": ""}`))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("Register() should panic")
				}
				if msg, _ := r.(string); !strings.Contains(msg, tt.want) {
					t.Errorf("panic = %v, want it to mention %q", r, tt.want)
				}
			}()
			Register(tt.id, tt.factory)
		})
	}
}
