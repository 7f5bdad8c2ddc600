package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/TGartman/SSC/config"
	"github.com/TGartman/SSC/internal/entity"
	"github.com/TGartman/SSC/internal/pkg/composer"
	"github.com/TGartman/SSC/internal/pkg/graph"
	"github.com/TGartman/SSC/internal/pkg/naming"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Preferred logo file names inside a brand's Logos folder, in order.
var preferredLogoNames = []string{"logo.png", "logo-white.png", "logo.jpg"}

func (s *postService) Compose(ctx context.Context, req *entity.ComposeRequest) (*entity.ComposeResponse, error) {
	brand, err := s.brand(req.Brand)
	if err != nil {
		return nil, err
	}
	preset, err := s.preset(req.Format)
	if err != nil {
		return nil, err
	}
	if req.ProductImage == nil || req.ProductImage.DriveID == "" || req.ProductImage.ItemID == "" {
		return nil, fmt.Errorf("%w: productImage.driveId and productImage.itemId are required", entity.ErrBadRequest)
	}

	logoRef := req.LogoImage
	if logoRef == nil {
		logoRef, err = s.resolveBrandLogo(ctx, brand)
		if err != nil {
			return nil, err
		}
	}

	background, err := s.client.Download(ctx, req.ProductImage.DriveID, req.ProductImage.ItemID)
	if err != nil {
		return nil, fmt.Errorf("download product image: %w", err)
	}
	logo, err := s.client.Download(ctx, logoRef.DriveID, logoRef.ItemID)
	if err != nil {
		return nil, fmt.Errorf("download logo: %w", err)
	}

	result, err := composer.Compose(composer.Spec{
		Canvas:     composer.Canvas{Width: preset.Width, Height: preset.Height},
		Background: background,
		Logo:       logo,
		Text:       composer.Text{Headline: req.Headline, Subhead: req.Subhead, CTA: req.CTA},
		Style:      s.style(req.Style),
	})
	if err != nil {
		return nil, err
	}

	resp := &entity.ComposeResponse{
		Brand:    brand.Name,
		Format:   preset.Name,
		Width:    result.Width,
		Height:   result.Height,
		MimeType: "image/png",
	}

	product := shortID()
	fileName := req.Output.FileName
	if fileName == "" {
		fileName = naming.Render(s.app.FileNameTemplate, brand.Name, product, preset.Name)
	} else {
		fileName = naming.Sanitize(fileName)
	}

	if req.Output.SaveToSharePoint {
		saved, err := s.upload(ctx, brand, fileName, result.PNG)
		if err != nil {
			return nil, err
		}
		resp.Saved = saved
	}

	if req.Output.ReturnBase64 {
		encoded := base64.StdEncoding.EncodeToString(result.PNG)
		resp.Base64 = &encoded
	}

	s.publishComposed(brand.Name, product, preset.Name, fileName, resp.Saved)

	return resp, nil
}

// resolveBrandLogo finds the brand logo by convention: the Logos folder under
// the brand root, favoring the preferred names.
func (s *postService) resolveBrandLogo(ctx context.Context, brand config.BrandConfig) (*entity.ImageRef, error) {
	logosID, err := graph.ResolvePath(ctx, s.client, brand.DriveID, brand.RootItemID, graph.FolderLogos)
	if err != nil {
		return nil, fmt.Errorf("resolve brand logo: %w", err)
	}
	items, err := s.client.ListChildren(ctx, brand.DriveID, logosID)
	if err != nil {
		return nil, err
	}
	file, ok := graph.PickFile(items, preferredLogoNames)
	if !ok {
		return nil, fmt.Errorf("%w: no logo file in the %s folder for brand %s", entity.ErrNotFound, graph.FolderLogos, brand.Name)
	}
	return &entity.ImageRef{DriveID: brand.DriveID, ItemID: file.ID}, nil
}

func (s *postService) upload(ctx context.Context, brand config.BrandConfig, name string, data []byte) (*entity.SavedFile, error) {
	postsID, err := graph.ResolvePath(ctx, s.client, brand.DriveID, brand.RootItemID, graph.FolderGeneratedPosts)
	if err != nil {
		return nil, fmt.Errorf("resolve output folder: %w", err)
	}
	item, err := s.client.Upload(ctx, brand.DriveID, postsID, name, data)
	if err != nil {
		return nil, fmt.Errorf("upload composed post: %w", err)
	}
	return &entity.SavedFile{
		DriveID: brand.DriveID,
		ItemID:  item.ID,
		Name:    item.Name,
		WebURL:  item.WebURL,
	}, nil
}

// publishComposed emits a best-effort event; a broker failure never fails the
// request.
func (s *postService) publishComposed(brand, product, format, fileName string, saved *entity.SavedFile) {
	if s.producer == nil {
		return
	}
	event := entity.PostComposedEvent{
		ID:         uuid.New().String(),
		Brand:      brand,
		Product:    product,
		Format:     format,
		FileName:   fileName,
		ComposedAt: time.Now().UTC(),
	}
	if saved != nil {
		event.ItemID = saved.ItemID
	}
	if err := s.producer.SendMessage(s.topic, event); err != nil {
		logrus.WithError(err).Warn("failed to publish composed event")
	}
}

func shortID() string {
	return strings.SplitN(uuid.New().String(), "-", 2)[0]
}
