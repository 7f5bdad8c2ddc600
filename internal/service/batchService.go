package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/TGartman/SSC/config"
	"github.com/TGartman/SSC/internal/entity"
	"github.com/TGartman/SSC/internal/pkg/composer"
	"github.com/TGartman/SSC/internal/pkg/graph"
	"github.com/TGartman/SSC/internal/pkg/naming"
)

func categoryFolder(category string) (string, error) {
	switch strings.ToLower(category) {
	case "exterior":
		return graph.FolderExteriorProducts, nil
	case "interior":
		return graph.FolderInteriorProducts, nil
	case "":
		return "", fmt.Errorf("%w: category is required", entity.ErrBadRequest)
	}
	return "", fmt.Errorf("%w: unknown category %q, supported: exterior, interior", entity.ErrBadRequest, category)
}

// Batch composes a post for every product folder under brand/category.
// Items are processed one at a time with a courtesy delay toward the remote
// API; one item's failure is recorded and never aborts the rest.
func (s *postService) Batch(ctx context.Context, req *entity.BatchRequest) ([]entity.BatchOutcome, error) {
	brand, err := s.brand(req.Brand)
	if err != nil {
		return nil, err
	}
	preset, err := s.preset(req.Format)
	if err != nil {
		return nil, err
	}
	catFolder, err := categoryFolder(req.Category)
	if err != nil {
		return nil, err
	}
	strategy, err := graph.ParseStrategy(req.PickStrategy)
	if err != nil {
		return nil, err
	}
	style := s.style(req.Style)

	categoryID, err := graph.ResolvePath(ctx, s.client, brand.DriveID, brand.RootItemID, catFolder)
	if err != nil {
		return nil, err
	}
	children, err := s.client.ListChildren(ctx, brand.DriveID, categoryID)
	if err != nil {
		return nil, err
	}

	var products []graph.DriveItem
	for _, item := range children {
		if item.IsFolder() {
			products = append(products, item)
		}
	}

	limit := req.Limit
	if limit <= 0 || limit > len(products) {
		limit = len(products)
	}
	if s.app.BatchMaxItems > 0 && limit > s.app.BatchMaxItems {
		limit = s.app.BatchMaxItems
	}
	products = products[:limit]

	logoRef, err := s.resolveBrandLogo(ctx, brand)
	if err != nil {
		return nil, err
	}
	logo, err := s.client.Download(ctx, logoRef.DriveID, logoRef.ItemID)
	if err != nil {
		return nil, fmt.Errorf("download logo: %w", err)
	}

	outcomes := make([]entity.BatchOutcome, 0, len(products))
	for i, product := range products {
		if i > 0 {
			s.sleep(s.app.BatchDelay)
		}
		outcomes = append(outcomes, s.composeProduct(ctx, brand, product, preset, strategy, style, logo, req))
	}
	return outcomes, nil
}

func (s *postService) composeProduct(
	ctx context.Context,
	brand config.BrandConfig,
	product graph.DriveItem,
	preset entity.CanvasPreset,
	strategy graph.PickStrategy,
	style composer.Style,
	logo []byte,
	req *entity.BatchRequest,
) entity.BatchOutcome {
	outcome := entity.BatchOutcome{Product: product.Name}

	children, err := s.client.ListChildren(ctx, brand.DriveID, product.ID)
	if err != nil {
		outcome.Reason = err.Error()
		return outcome
	}

	var lifestyle, catalog *graph.FolderRef
	if f, ok := graph.FindChildFolder(children, graph.FolderLifestyleImages); ok {
		lifestyle = &graph.FolderRef{DriveID: brand.DriveID, ItemID: f.ID, Name: f.Name}
	}
	if f, ok := graph.FindChildFolder(children, graph.FolderCatalogImages); ok {
		catalog = &graph.FolderRef{DriveID: brand.DriveID, ItemID: f.ID, Name: f.Name}
	}

	folder, ok := graph.ResolveImageFolder(strategy, lifestyle, catalog)
	if !ok {
		outcome.Reason = fmt.Sprintf("no image folder for strategy %s", strategy)
		return outcome
	}

	images, err := s.client.ListChildren(ctx, folder.DriveID, folder.ItemID)
	if err != nil {
		outcome.Reason = err.Error()
		return outcome
	}
	file, ok := graph.PickFile(images, []string{product.Name + ".jpg", product.Name + ".png"})
	if !ok {
		outcome.Reason = fmt.Sprintf("no image file in %s", folder.Name)
		return outcome
	}

	if req.DryRun {
		outcome.OK = true
		outcome.Reason = "dry run"
		return outcome
	}

	background, err := s.client.Download(ctx, folder.DriveID, file.ID)
	if err != nil {
		outcome.Reason = err.Error()
		return outcome
	}

	result, err := composer.Compose(composer.Spec{
		Canvas:     composer.Canvas{Width: preset.Width, Height: preset.Height},
		Background: background,
		Logo:       logo,
		Text:       composer.Text{Headline: req.Headline, Subhead: req.Subhead, CTA: req.CTA},
		Style:      style,
	})
	if err != nil {
		outcome.Reason = err.Error()
		return outcome
	}

	fileName := naming.Render(firstNonEmpty(req.FileName, s.app.FileNameTemplate), brand.Name, product.Name, preset.Name)
	saved, err := s.upload(ctx, brand, fileName, result.PNG)
	if err != nil {
		outcome.Reason = err.Error()
		return outcome
	}

	outcome.OK = true
	outcome.Saved = saved
	s.publishComposed(brand.Name, product.Name, preset.Name, fileName, saved)
	return outcome
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
