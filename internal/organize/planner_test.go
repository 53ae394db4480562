package organize

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDestinationFor(t *testing.T) {
	date := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		mode  SortMode
		valid bool
		want  string
	}{
		{
			name:  "by-type",
			mode:  SortByType,
			valid: true,
			want:  filepath.Join("/src", "Images", "photo.jpg"),
		},
		{
			name:  "by-date",
			mode:  SortByDate,
			valid: true,
			want:  filepath.Join("/src", "2024", "03-March", "photo.jpg"),
		},
		{
			name:  "by-both",
			mode:  SortByBoth,
			valid: true,
			want:  filepath.Join("/src", "Images", "2024", "03-March", "photo.jpg"),
		},
		{
			name:  "by-date without a usable date",
			mode:  SortByDate,
			valid: false,
			want:  filepath.Join("/src", "Unknown", "Unknown", "photo.jpg"),
		},
		{
			name:  "by-both without a usable date",
			mode:  SortByBoth,
			valid: false,
			want:  filepath.Join("/src", "Images", "Unknown", "Unknown", "photo.jpg"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Planner{Root: "/src", Mode: tt.mode}
			got := p.DestinationFor("/src/photo.jpg", CategoryImages, date, tt.valid)
			if got != tt.want {
				t.Errorf("DestinationFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFolderDestinationFor(t *testing.T) {
	p := Planner{Root: "/src", Mode: SortByDate}
	date := time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)

	got := p.FolderDestinationFor("/src/vacation", date, true)
	want := filepath.Join("/src", "2023", "12-December", "vacation")
	if got != want {
		t.Errorf("FolderDestinationFor() = %q, want %q", got, want)
	}

	got = p.FolderDestinationFor("/src/vacation", time.Time{}, false)
	want = filepath.Join("/src", "Unknown", "Unknown", "vacation")
	if got != want {
		t.Errorf("FolderDestinationFor() without date = %q, want %q", got, want)
	}
}

func TestMonthFolder(t *testing.T) {
	if got := MonthFolder(time.January); got != "01-January" {
		t.Errorf("MonthFolder(January) = %q", got)
	}
	if got := MonthFolder(time.September); got != "09-September" {
		t.Errorf("MonthFolder(September) = %q", got)
	}
}

func TestIsAlreadyOrganized(t *testing.T) {
	tests := []struct {
		name string
		mode SortMode
		path string
		want bool
	}{
		{"by-type inside category", SortByType, "/src/Images/a.jpg", true},
		{"by-type unknown folder", SortByType, "/src/Downloads/a.jpg", false},
		{"by-type root file", SortByType, "/src/a.jpg", false},
		{"by-date inside dated", SortByDate, "/src/2024/03-March/a.jpg", true},
		{"by-date unknown bucket", SortByDate, "/src/Unknown/Unknown/a.jpg", true},
		{"by-date wrong month name", SortByDate, "/src/2024/March/a.jpg", false},
		{"by-date year only", SortByDate, "/src/2024/a.jpg", false},
		{"by-both full shape", SortByBoth, "/src/Images/2024/03-March/a.jpg", true},
		{"by-both category only", SortByBoth, "/src/Images/a.jpg", false},
		{"outside root", SortByType, "/elsewhere/Images/a.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Planner{Root: "/src", Mode: tt.mode}
			if got := p.IsAlreadyOrganized(tt.path); got != tt.want {
				t.Errorf("IsAlreadyOrganized(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestUniqueDestination(t *testing.T) {
	dir := t.TempDir()

	free := filepath.Join(dir, "report.pdf")
	got, err := UniqueDestination(free)
	if err != nil {
		t.Fatal(err)
	}
	if got != free {
		t.Errorf("free path rewritten to %q", got)
	}

	mustWriteFile(t, free)
	got, err = UniqueDestination(free)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "report_1.pdf"); got != want {
		t.Errorf("first collision = %q, want %q", got, want)
	}

	mustWriteFile(t, filepath.Join(dir, "report_1.pdf"))
	got, err = UniqueDestination(free)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "report_2.pdf"); got != want {
		t.Errorf("second collision = %q, want %q", got, want)
	}
}

func TestUniqueDirDestination(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "vacation")
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := uniqueDirDestination(target)
	if err != nil {
		t.Fatal(err)
	}
	if want := target + "_1"; got != want {
		t.Errorf("uniqueDirDestination() = %q, want %q", got, want)
	}
}

func TestPathLengthOK(t *testing.T) {
	if !PathLengthOK("/short/path.txt") {
		t.Error("short path rejected")
	}
	long := "/" + strings.Repeat("a", MaxPathLength)
	if PathLengthOK(long) {
		t.Error("overlong path accepted")
	}
}

func mustWriteFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}
