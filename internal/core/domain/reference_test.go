package domain

import "testing"

func TestPlatformFor(t *testing.T) {
	tests := []struct {
		goos     string
		expected Platform
	}{
		{"ios", PlatformIOS},
		{"android", PlatformAndroid},
		{"windows", PlatformWindows},
		{"linux", PlatformDefault},
		{"darwin", PlatformDefault},
	}

	for _, tt := range tests {
		if got := PlatformFor(tt.goos); got != tt.expected {
			t.Errorf("PlatformFor(%q) = %v, want %v", tt.goos, got, tt.expected)
		}
	}
}

func TestReferenceFor(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		path     string
		expected string
	}{
		{"ios", PlatformIOS, "/var/mobile/Documents/security_cam_photos/photo_1.jpg", "file:///var/mobile/Documents/security_cam_photos/photo_1.jpg"},
		{"android", PlatformAndroid, "/data/user/0/app/files/photo_1.jpg", "file:///data/user/0/app/files/photo_1.jpg"},
		{"default", PlatformDefault, "/home/me/.local/share/secam/photo_1.jpg", "file:///home/me/.local/share/secam/photo_1.jpg"},
		{"windows drive path", PlatformWindows, `C:\Users\me\photo_1.jpg`, "file:///C:/Users/me/photo_1.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReferenceFor(tt.platform, tt.path); got != tt.expected {
				t.Errorf("ReferenceFor(%v, %q) = %q, want %q", tt.platform, tt.path, got, tt.expected)
			}
		})
	}
}

func TestFromReference(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		expected string
	}{
		{"unix reference", "file:///tmp/photo_1.jpg", "/tmp/photo_1.jpg"},
		{"plain path untouched", "/tmp/photo_1.jpg", "/tmp/photo_1.jpg"},
		{"relative path untouched", "photo_1.jpg", "photo_1.jpg"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromReference(tt.ref); got != tt.expected {
				t.Errorf("FromReference(%q) = %q, want %q", tt.ref, got, tt.expected)
			}
		})
	}
}

func TestFromReference_WindowsDriveForm(t *testing.T) {
	got := FromReference("file:///C:/Users/me/photo_1.jpg")
	// FromSlash only rewrites separators on windows
	if got != "C:/Users/me/photo_1.jpg" && got != `C:\Users\me\photo_1.jpg` {
		t.Errorf("FromReference() = %q, want drive path", got)
	}
}

func TestReferenceRoundTrip(t *testing.T) {
	for _, p := range []Platform{PlatformDefault, PlatformIOS, PlatformAndroid} {
		path := "/data/security_cam_photos/photo_99.jpg"
		if got := FromReference(ReferenceFor(p, path)); got != path {
			t.Errorf("%v: round trip = %q, want %q", p, got, path)
		}
	}
}
