package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOrderID(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"plain", "my order ORD1001 arrived broken", "ORD1001", true},
		{"lowercase normalized", "order ord1004 please", "ORD1004", true},
		{"mixed case", "OrD1002 has not arrived", "ORD1002", true},
		{"first of several", "ORD1004 and also ORD1001", "ORD1004", true},
		{"longer digit run matches first four", "ticket ORD12345", "ORD1234", true},
		{"embedded in word", "xORD1001x", "ORD1001", true},
		{"no digits after prefix", "my ORDER got lost", "", false},
		{"too few digits", "ORD123 is wrong", "", false},
		{"no id at all", "my package is late", "", false},
		{"empty text", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractOrderID(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidOrderID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"ORD1001", true},
		{"ORD0000", true},
		{"ord1001", false}, // caller-supplied ids are used unchanged, not re-cased
		{"ORD123", false},
		{"ORD12345", false},
		{"XORD1001", false},
		{"ORD1001X", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidOrderID(tt.id))
		})
	}
}
