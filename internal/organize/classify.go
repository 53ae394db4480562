package organize

import (
	"path/filepath"
	"strings"
)

// Category is a coarse file-type bucket derived from the file extension.
type Category string

const (
	CategoryImages      Category = "Images"
	CategoryDocuments   Category = "Documents"
	CategoryVideos      Category = "Videos"
	CategoryAudio       Category = "Audio"
	CategoryArchives    Category = "Archives"
	CategoryCode        Category = "Code"
	CategoryExecutables Category = "Executables"
	CategoryFonts       Category = "Fonts"
	CategoryOther       Category = "Other"
	CategoryNoExtension Category = "No Extension"
)

// extensionCategories maps lowercase single extensions to categories.
var extensionCategories = map[string]Category{
	// Images
	".jpg": CategoryImages, ".jpeg": CategoryImages, ".png": CategoryImages,
	".gif": CategoryImages, ".bmp": CategoryImages, ".webp": CategoryImages,
	".svg": CategoryImages, ".tiff": CategoryImages, ".heic": CategoryImages,

	// Documents
	".pdf": CategoryDocuments, ".doc": CategoryDocuments, ".docx": CategoryDocuments,
	".txt": CategoryDocuments, ".md": CategoryDocuments, ".rtf": CategoryDocuments,
	".odt": CategoryDocuments, ".xls": CategoryDocuments, ".xlsx": CategoryDocuments,
	".ppt": CategoryDocuments, ".pptx": CategoryDocuments, ".csv": CategoryDocuments,

	// Videos
	".mp4": CategoryVideos, ".avi": CategoryVideos, ".mov": CategoryVideos,
	".mkv": CategoryVideos, ".wmv": CategoryVideos, ".webm": CategoryVideos,
	".m4v": CategoryVideos,

	// Audio
	".mp3": CategoryAudio, ".wav": CategoryAudio, ".flac": CategoryAudio,
	".aac": CategoryAudio, ".ogg": CategoryAudio, ".m4a": CategoryAudio,

	// Archives
	".zip": CategoryArchives, ".rar": CategoryArchives, ".7z": CategoryArchives,
	".tar": CategoryArchives, ".gz": CategoryArchives, ".bz2": CategoryArchives,
	".xz": CategoryArchives,

	// Code
	".go": CategoryCode, ".py": CategoryCode, ".js": CategoryCode,
	".ts": CategoryCode, ".c": CategoryCode, ".h": CategoryCode,
	".cpp": CategoryCode, ".rs": CategoryCode, ".java": CategoryCode,
	".rb": CategoryCode, ".sh": CategoryCode, ".html": CategoryCode,
	".css": CategoryCode, ".json": CategoryCode, ".yaml": CategoryCode,
	".yml": CategoryCode, ".sql": CategoryCode,

	// Executables
	".exe": CategoryExecutables, ".msi": CategoryExecutables,
	".deb": CategoryExecutables, ".rpm": CategoryExecutables,
	".appimage": CategoryExecutables, ".dmg": CategoryExecutables,

	// Fonts
	".ttf": CategoryFonts, ".otf": CategoryFonts,
	".woff": CategoryFonts, ".woff2": CategoryFonts,
}

// compoundExtensions are two-part suffixes checked before the final
// extension, so "backup.tar.gz" lands in Archives rather than whatever
// ".gz" alone would give.
var compoundExtensions = map[string]Category{
	".tar.gz":  CategoryArchives,
	".tar.bz2": CategoryArchives,
	".tar.xz":  CategoryArchives,
}

// knownCategories is the set of folder names the planner treats as part of
// an organized structure.
var knownCategories = func() map[Category]struct{} {
	set := map[Category]struct{}{
		CategoryOther:       {},
		CategoryNoExtension: {},
	}
	for _, c := range extensionCategories {
		set[c] = struct{}{}
	}
	return set
}()

// CategoryOf returns the category for a path based on its extension.
// Compound extensions take priority over the final single extension.
func CategoryOf(path string) Category {
	name := strings.ToLower(filepath.Base(path))

	for suffix, cat := range compoundExtensions {
		if strings.HasSuffix(name, suffix) {
			return cat
		}
	}

	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		// no suffix, or a dotfile whose whole name is the "extension"
		return CategoryNoExtension
	}
	if cat, ok := extensionCategories[ext]; ok {
		return cat
	}
	return CategoryOther
}

// IsKnownCategory reports whether name matches one of the category folder
// names the engine creates.
func IsKnownCategory(name string) bool {
	_, ok := knownCategories[Category(name)]
	return ok
}
