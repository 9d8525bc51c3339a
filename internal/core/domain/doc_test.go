package domain

import "testing"

func TestDocInt(t *testing.T) {
	d := Doc{
		"int":     3,
		"int64":   int64(4),
		"float64": float64(5),
		"string":  "6",
	}
	if d.Int("int") != 3 || d.Int("int64") != 4 || d.Int("float64") != 5 {
		t.Fatalf("numeric reads failed: %v", d)
	}
	if d.Int("string") != 0 || d.Int("absent") != 0 {
		t.Fatalf("non-numeric reads must yield zero")
	}
}

func TestDocWithoutID(t *testing.T) {
	d := Doc{IDField: "abc", "name": "chair"}
	stripped := d.WithoutID()
	if stripped.ID() != "" {
		t.Fatalf("id not stripped: %v", stripped)
	}
	if stripped.Str("name") != "chair" {
		t.Fatalf("other fields lost: %v", stripped)
	}
	if d.ID() != "abc" {
		t.Fatalf("original mutated: %v", d)
	}
}

func TestLooksLikeProfile(t *testing.T) {
	profile := Doc{"email": "a@b.com", "firstName": "A", "lastName": "B", "role": RoleUser}
	if _, ok := LooksLikeProfile(profile); !ok {
		t.Fatalf("profile-shaped document not recognized")
	}
	if _, ok := LooksLikeProfile(map[string]any{"firstName": "A", "lastName": "B", "role": RoleUser}); !ok {
		t.Fatalf("plain map with profile fields not recognized")
	}
	if _, ok := LooksLikeProfile(Doc{"email": "a@b.com"}); ok {
		t.Fatalf("partial document recognized as profile")
	}
	if _, ok := LooksLikeProfile("a@b.com"); ok {
		t.Fatalf("string recognized as profile")
	}
}
