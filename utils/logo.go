package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Extensions accepted for company logo uploads.
var logoExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// LogoFilename builds the stored name for an uploaded logo, namespaced per
// user so re-uploads never collide across accounts.
func LogoFilename(userID, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !logoExtensions[ext] {
		return "", fmt.Errorf("unsupported logo file type %q", ext)
	}
	return fmt.Sprintf("%s/logo-%d%s", userID, time.Now().UnixMilli(), ext), nil
}
