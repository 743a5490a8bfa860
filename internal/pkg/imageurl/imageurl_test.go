package imageurl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/homies-gc/homies-api/internal/pkg/imageurl"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "http on the production host is upgraded",
			raw:  "http://homies.example.com/uploads/members/a.jpg",
			want: "https://homies.example.com/uploads/members/a.jpg",
		},
		{
			name: "host comparison ignores case",
			raw:  "http://HOMIES.example.com/uploads/members/a.jpg",
			want: "https://HOMIES.example.com/uploads/members/a.jpg",
		},
		{
			name: "other hosts pass through",
			raw:  "http://localhost:8080/uploads/members/a.jpg",
			want: "http://localhost:8080/uploads/members/a.jpg",
		},
		{
			name: "https passes through",
			raw:  "https://homies.example.com/uploads/members/a.jpg",
			want: "https://homies.example.com/uploads/members/a.jpg",
		},
		{
			name: "relative paths pass through",
			raw:  "uploads/members/a.jpg",
			want: "uploads/members/a.jpg",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, imageurl.Normalize(tt.raw, "homies.example.com"))
		})
	}
}
