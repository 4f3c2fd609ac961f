package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindRoot(t *testing.T) {
	// base/
	//   lessons/ (.lectern)
	//     baroque/
	//       air/
	//   course/ (lectern.yml)
	//   empty/
	baseDir := t.TempDir()
	lessonsDir := filepath.Join(baseDir, "lessons")
	baroqueDir := filepath.Join(lessonsDir, "baroque")
	airDir := filepath.Join(baroqueDir, "air")
	courseDir := filepath.Join(baseDir, "course")
	emptyDir := filepath.Join(baseDir, "empty")

	for _, dir := range []string{airDir, courseDir, emptyDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(lessonsDir, ".lectern"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(courseDir, ConfigFile), nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{"Start at Root", lessonsDir, lessonsDir, false},
		{"Start in Subdir", baroqueDir, lessonsDir, false},
		{"Start Nested Deeply", airDir, lessonsDir, false},
		{"Config File Marker", courseDir, courseDir, false},
		{"No Root Found", emptyDir, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("FindRoot() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != "" && filepath.Clean(got) != filepath.Clean(tt.wantRoot) {
				t.Errorf("FindRoot() = %v, want %v", got, tt.wantRoot)
			}
		})
	}
}
