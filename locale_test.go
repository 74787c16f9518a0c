package oasloc

import "testing"

func TestNormalizeLocale(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"pt-BR", "pt-BR", false},
		{"pt_BR", "pt-BR", false},
		{"es", "es", false},
		{"EN-us", "en-US", false},
		{"not a locale", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeLocale(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeLocale(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeLocale(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBaseLang(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pt-BR", "pt"},
		{"pt_BR", "pt"},
		{"ES", "es"},
		{"zh-Hant-TW", "zh"},
	}

	for _, tt := range tests {
		if got := BaseLang(tt.in); got != tt.want {
			t.Errorf("BaseLang(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
