package services

import (
	"testing"
	"time"
)

func TestImageKey(t *testing.T) {
	kickOff := time.Date(2026, 9, 6, 18, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		want string
	}{
		{"Sunday League", "images/06-09-2026-18-30-Sunday-League.jpg"},
		{"five a side", "images/06-09-2026-18-30-five-a-side.jpg"},
		{"  padded   name ", "images/06-09-2026-18-30-padded-name.jpg"},
	}
	for _, tc := range cases {
		if got := ImageKey(tc.name, kickOff); got != tc.want {
			t.Errorf("ImageKey(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestObjectURL(t *testing.T) {
	svc := &S3Service{Bucket: "battles-images", Region: "eu-west-2"}
	want := "https://battles-images.s3.eu-west-2.amazonaws.com/images/x.jpg"
	if got := svc.ObjectURL("images/x.jpg"); got != want {
		t.Errorf("ObjectURL = %q, want %q", got, want)
	}
}
