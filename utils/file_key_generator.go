package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	dangerousChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	unsafeChars    = regexp.MustCompile(`[^\p{L}\p{N}_\-.]`)
	repeatedSeps   = regexp.MustCompile(`[_\-\.]{2,}`)
)

// FileKeyGenerator names staged uploads. Keys are unique per call even for the
// same original name in the same millisecond.
type FileKeyGenerator struct {
	maxNameLen int
	now        func() time.Time
}

func NewFileKeyGenerator() *FileKeyGenerator {
	return &FileKeyGenerator{
		maxNameLen: 50,
		now:        time.Now,
	}
}

// GenerateFileKey returns "<unix millis>-<short uuid>-<clean name>".
func (fkg *FileKeyGenerator) GenerateFileKey(filename string) string {
	uid := uuid.New().String()[:8]
	return fmt.Sprintf("%d-%s-%s", fkg.now().UnixMilli(), uid, fkg.cleanFilename(filename))
}

func (fkg *FileKeyGenerator) cleanFilename(filename string) string {
	filename = filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	ext := strings.ToLower(filepath.Ext(filename))
	baseName := strings.TrimSuffix(filename, filepath.Ext(filename))

	cleanBase := sanitizeFilename(baseName)
	if len(cleanBase) > fkg.maxNameLen {
		cleanBase = ensureValidUTF8End(cleanBase[:fkg.maxNameLen])
	}
	if cleanBase == "" || cleanBase == "_" {
		cleanBase = "document"
	}
	return cleanBase + sanitizeFilename(ext)
}

func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	name = dangerousChars.ReplaceAllString(name, "")
	name = unsafeChars.ReplaceAllString(name, "_")
	name = repeatedSeps.ReplaceAllString(name, "_")
	return strings.Trim(name, "_-")
}

// ensureValidUTF8End drops a trailing partial multi-byte rune left by truncation.
func ensureValidUTF8End(s string) string {
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
