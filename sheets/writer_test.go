package sheets

import "testing"

func TestExtractSpreadsheetID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "edit suffix",
			url:  "https://docs.google.com/spreadsheets/d/1FoGJ6ZzDIfFv3ZZ6_qWSn8hzEk4tlUEAT7ClQKYRmFo/edit",
			want: "1FoGJ6ZzDIfFv3ZZ6_qWSn8hzEk4tlUEAT7ClQKYRmFo",
		},
		{
			name: "sharing query",
			url:  "https://docs.google.com/spreadsheets/d/1FoGJ6ZzDIfFv3ZZ6_qWSn8hzEk4tlUEAT7ClQKYRmFo/edit?usp=sharing",
			want: "1FoGJ6ZzDIfFv3ZZ6_qWSn8hzEk4tlUEAT7ClQKYRmFo",
		},
		{
			name: "bare id with query",
			url:  "https://docs.google.com/spreadsheets/d/abc123?gid=0",
			want: "abc123",
		},
		{
			name: "not a sheets URL",
			url:  "https://example.com/whatever",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSpreadsheetID(tt.url); got != tt.want {
				t.Errorf("ExtractSpreadsheetID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
