package graph

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/TGartman/SSC/internal/entity"
)

type PickStrategy string

const (
	PreferLifestyle PickStrategy = "preferLifestyle"
	CatalogOnly     PickStrategy = "catalogOnly"
	LifestyleOnly   PickStrategy = "lifestyleOnly"
)

func ParseStrategy(s string) (PickStrategy, error) {
	if s == "" {
		return PreferLifestyle, nil
	}
	switch PickStrategy(s) {
	case PreferLifestyle, CatalogOnly, LifestyleOnly:
		return PickStrategy(s), nil
	}
	return "", fmt.Errorf("%w: unknown pickStrategy %q", entity.ErrBadRequest, s)
}

// FolderRef is a resolved image folder candidate.
type FolderRef struct {
	DriveID string
	ItemID  string
	Name    string
}

// ResolveImageFolder applies the pick strategy to the candidate folders.
// Pure selection policy; callers populate the candidates however they like.
func ResolveImageFolder(strategy PickStrategy, lifestyle, catalog *FolderRef) (*FolderRef, bool) {
	switch strategy {
	case LifestyleOnly:
		return lifestyle, lifestyle != nil
	case CatalogOnly:
		return catalog, catalog != nil
	default:
		if lifestyle != nil {
			return lifestyle, true
		}
		return catalog, catalog != nil
	}
}

var rasterExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

func IsRasterFile(name string) bool {
	return rasterExtensions[strings.ToLower(filepath.Ext(name))]
}

// PickFile selects a file from a folder listing: exact preferred-name match
// first (case-insensitive, in preference order), then any supported raster
// extension, then the first file present.
func PickFile(items []DriveItem, preferred []string) (*DriveItem, bool) {
	for _, want := range preferred {
		for i := range items {
			if !items[i].IsFolder() && strings.EqualFold(items[i].Name, want) {
				return &items[i], true
			}
		}
	}
	for i := range items {
		if !items[i].IsFolder() && IsRasterFile(items[i].Name) {
			return &items[i], true
		}
	}
	for i := range items {
		if !items[i].IsFolder() {
			return &items[i], true
		}
	}
	return nil, false
}
