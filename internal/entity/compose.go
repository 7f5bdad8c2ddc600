package entity

// ImageRef identifies a file in the remote drive.
type ImageRef struct {
	DriveID string `json:"driveId"`
	ItemID  string `json:"itemId"`
}

// StyleOverrides are optional per-request tweaks over the configured defaults.
// Pointer fields distinguish "not sent" from zero values.
type StyleOverrides struct {
	SafePaddingPx   *int     `json:"safePaddingPx,omitempty"`
	LogoMaxWidthPct *float64 `json:"logoMaxWidthPct,omitempty"`
	LogoPlacement   string   `json:"logoPlacement,omitempty"`
	TextAlign       string   `json:"textAlign,omitempty"`
}

type OutputOptions struct {
	SaveToSharePoint bool   `json:"saveToSharePoint"`
	ReturnBase64     bool   `json:"returnBase64"`
	FileName         string `json:"fileName,omitempty"`
}

type ComposeRequest struct {
	Brand        string          `json:"brand"`
	Format       string          `json:"format"`
	ProductImage *ImageRef       `json:"productImage"`
	LogoImage    *ImageRef       `json:"logoImage,omitempty"`
	Headline     string          `json:"headline,omitempty"`
	Subhead      string          `json:"subhead,omitempty"`
	CTA          string          `json:"cta,omitempty"`
	Style        *StyleOverrides `json:"style,omitempty"`
	Output       OutputOptions   `json:"output"`
}

// SavedFile describes the uploaded result when saveToSharePoint was requested.
type SavedFile struct {
	DriveID string `json:"driveId"`
	ItemID  string `json:"itemId"`
	Name    string `json:"name"`
	WebURL  string `json:"webUrl,omitempty"`
}

type ComposeResponse struct {
	Brand    string     `json:"brand"`
	Format   string     `json:"format"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	MimeType string     `json:"mimeType"`
	Base64   *string    `json:"base64"`
	Saved    *SavedFile `json:"saved"`
}

type BatchRequest struct {
	Brand        string          `json:"brand"`
	Category     string          `json:"category"`
	Format       string          `json:"format"`
	Limit        int             `json:"limit,omitempty"`
	DryRun       bool            `json:"dryRun,omitempty"`
	PickStrategy string          `json:"pickStrategy,omitempty"`
	Headline     string          `json:"headline,omitempty"`
	Subhead      string          `json:"subhead,omitempty"`
	CTA          string          `json:"cta,omitempty"`
	Style        *StyleOverrides `json:"style,omitempty"`
	FileName     string          `json:"fileName,omitempty"`
}

// BatchOutcome is the per-product result of a batch run. A failed item
// carries a reason and never aborts the rest of the batch.
type BatchOutcome struct {
	Product string     `json:"product"`
	OK      bool       `json:"ok"`
	Reason  string     `json:"reason,omitempty"`
	Saved   *SavedFile `json:"saved,omitempty"`
}

type ListRequest struct {
	Brand       string `json:"brand"`
	Category    string `json:"category"`
	ProductLine string `json:"productLine"`
	FolderType  string `json:"folderType"`
}

type ImageInfo struct {
	DriveID   string `json:"driveId"`
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
	WebURL    string `json:"webUrl,omitempty"`
	MimeType  string `json:"mimeType,omitempty"`
	SizeBytes int64  `json:"sizeBytes"`
}
