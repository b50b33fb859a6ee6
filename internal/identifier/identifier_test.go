package identifier

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{
			name:     "standard slide filename",
			filename: "ms39080-51-5-1-1.jpeg",
			expected: "ms39080",
		},
		{
			name:     "identifier only before extension",
			filename: "ms12345.png",
			expected: "ms12345",
		},
		{
			name:     "uppercase prefix normalized",
			filename: "MS39080-2.jpg",
			expected: "ms39080",
		},
		{
			name:     "underscore separator",
			filename: "ms7_box3.webp",
			expected: "ms7",
		},
		{
			name:     "no identifier",
			filename: "holiday-snaps-001.jpeg",
			expected: "",
		},
		{
			name:     "ms not at start",
			filename: "scan-ms39080.jpeg",
			expected: "",
		},
		{
			name:     "ms without digits",
			filename: "mslides.jpeg",
			expected: "",
		},
		{
			name:     "empty filename",
			filename: "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Extract(tt.filename)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}
