package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/TGartman/SSC/internal/entity"
	"github.com/TGartman/SSC/internal/pkg/graph"
)

func folderTypeName(folderType string) (string, error) {
	switch strings.ToLower(folderType) {
	case "lifestyle":
		return graph.FolderLifestyleImages, nil
	case "catalog":
		return graph.FolderCatalogImages, nil
	case "":
		return "", fmt.Errorf("%w: folderType is required", entity.ErrBadRequest)
	}
	return "", fmt.Errorf("%w: unknown folderType %q, supported: lifestyle, catalog", entity.ErrBadRequest, folderType)
}

// ListImages traverses brand/category/productLine/folderType read-only and
// returns the image files found there.
func (s *postService) ListImages(ctx context.Context, req *entity.ListRequest) ([]entity.ImageInfo, error) {
	brand, err := s.brand(req.Brand)
	if err != nil {
		return nil, err
	}
	catFolder, err := categoryFolder(req.Category)
	if err != nil {
		return nil, err
	}
	if req.ProductLine == "" {
		return nil, fmt.Errorf("%w: productLine is required", entity.ErrBadRequest)
	}
	typeFolder, err := folderTypeName(req.FolderType)
	if err != nil {
		return nil, err
	}

	folderID, err := graph.ResolvePath(ctx, s.client, brand.DriveID, brand.RootItemID,
		catFolder, req.ProductLine, typeFolder)
	if err != nil {
		return nil, err
	}

	items, err := s.client.ListChildren(ctx, brand.DriveID, folderID)
	if err != nil {
		return nil, err
	}

	images := make([]entity.ImageInfo, 0, len(items))
	for _, item := range items {
		if item.IsFolder() || !graph.IsRasterFile(item.Name) {
			continue
		}
		images = append(images, entity.ImageInfo{
			DriveID:   brand.DriveID,
			ItemID:    item.ID,
			Name:      item.Name,
			WebURL:    item.WebURL,
			MimeType:  item.MimeType(),
			SizeBytes: item.SizeBytes,
		})
	}
	return images, nil
}
