package orthography

import "testing"

func TestIPARender(t *testing.T) {
	ipa := NewIPA(map[string]string{
		"r\\": "ɹ",
		"tS":  "tʃ",
		"A:":  "ɑː",
		"@":   "ə",
	})
	cases := []struct {
		name    string
		symbols []string
		want    string
	}{
		{"mapped symbols", []string{"tS", "A:", "r\\"}, "tʃɑːɹ"},
		{"unknown passes through", []string{"f", "A:", "unknown"}, "fɑːunknown"},
		{"empty", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ipa.Render(tc.symbols); got != tc.want {
				t.Fatalf("Render(%v) = %q, want %q", tc.symbols, got, tc.want)
			}
		})
	}
}

func TestIPACopiesMappings(t *testing.T) {
	src := map[string]string{"a": "a"}
	ipa := NewIPA(src)
	src["a"] = "b"
	if got := ipa.Render([]string{"a"}); got != "a" {
		t.Fatalf("Render(a) = %q after caller mutation, want %q", got, "a")
	}
}
