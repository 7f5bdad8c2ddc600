package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/TGartman/SSC/internal/entity"
)

// Brand folder conventions. Each brand root contains these top-level folders;
// product folders may contain the image subfolders.
const (
	FolderLogos            = "Logos"
	FolderGeneratedPosts   = "Generated Posts"
	FolderExteriorProducts = "Exterior Products"
	FolderInteriorProducts = "Interior Products"
	FolderLifestyleImages  = "Lifestyle Images"
	FolderCatalogImages    = "Catalog Images"
)

// NotFoundError reports which level of the folder convention failed to
// resolve, so callers can tell a missing category from a missing product.
type NotFoundError struct {
	Level string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("folder %q not found", e.Level)
}

func (e *NotFoundError) Unwrap() error { return entity.ErrNotFound }

// FindChildFolder returns the child folder matching name case-insensitively.
func FindChildFolder(items []DriveItem, name string) (*DriveItem, bool) {
	for i := range items {
		if items[i].IsFolder() && strings.EqualFold(items[i].Name, name) {
			return &items[i], true
		}
	}
	return nil, false
}

// ResolvePath walks the named folders from rootID, matching each level
// case-insensitively. On a miss it returns a *NotFoundError naming the level.
func ResolvePath(ctx context.Context, c Client, driveID, rootID string, names ...string) (string, error) {
	current := rootID
	for _, name := range names {
		items, err := c.ListChildren(ctx, driveID, current)
		if err != nil {
			return "", err
		}
		folder, ok := FindChildFolder(items, name)
		if !ok {
			return "", &NotFoundError{Level: name}
		}
		current = folder.ID
	}
	return current, nil
}
