package models

import "testing"

func TestMessageKind_Valid(t *testing.T) {
	for _, k := range []MessageKind{KindText, KindImage} {
		if !k.Valid() {
			t.Fatalf("%q must be valid", k)
		}
	}
	for _, k := range []MessageKind{"", "video", "TEXT"} {
		if k.Valid() {
			t.Fatalf("%q must be invalid", k)
		}
	}
}
