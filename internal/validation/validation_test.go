package validation

import (
	"testing"

	"github.com/amslee/postcal/internal/models"
)

func TestValidateDate(t *testing.T) {
	tests := []struct {
		date    string
		wantErr bool
	}{
		{"2024-06-10", false},
		{"2024-02-29", false},
		{"2023-02-29", true},
		{"2024-6-1", true},
		{"06/10/2024", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			err := ValidateDate(tt.date)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePostTime(t *testing.T) {
	tests := []struct {
		postTime string
		wantErr  bool
	}{
		{"", false},
		{"09:30", false},
		{"00:00", false},
		{"23:59", false},
		{"24:00", true},
		{"12:60", true},
		{"9:30pm", true},
		{"noon", true},
		{"12", true},
	}

	for _, tt := range tests {
		t.Run(tt.postTime, func(t *testing.T) {
			err := ValidatePostTime(tt.postTime)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePostTime(%q) error = %v, wantErr %v", tt.postTime, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePost(t *testing.T) {
	tests := []struct {
		name    string
		post    models.ContentItem
		wantErr bool
	}{
		{"valid", models.ContentItem{Date: "2024-06-10", Platform: models.PlatformInstagram, PostTime: "09:30"}, false},
		{"empty platform allowed", models.ContentItem{Date: "2024-06-10"}, false},
		{"sentinel platform allowed", models.ContentItem{Date: "2024-06-10", Platform: models.PlatformAutoPopulated}, false},
		{"bad date", models.ContentItem{Date: "tomorrow", Platform: models.PlatformInstagram}, true},
		{"bad platform", models.ContentItem{Date: "2024-06-10", Platform: "myspace"}, true},
		{"bad time", models.ContentItem{Date: "2024-06-10", PostTime: "25:00"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePost(tt.post)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePost() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
