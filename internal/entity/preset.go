package entity

// CanvasPreset is one of the supported output sizes. The set is fixed:
// every composed post is rendered at exactly one of these.
type CanvasPreset struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

var canvasPresets = []CanvasPreset{
	{Name: "square_1080", Width: 1080, Height: 1080},
	{Name: "portrait_1080", Width: 1080, Height: 1350},
	{Name: "story_1080", Width: 1080, Height: 1920},
}

func PresetByName(name string) (CanvasPreset, bool) {
	for _, p := range canvasPresets {
		if p.Name == name {
			return p, true
		}
	}
	return CanvasPreset{}, false
}

func PresetNames() []string {
	names := make([]string, 0, len(canvasPresets))
	for _, p := range canvasPresets {
		names = append(names, p.Name)
	}
	return names
}
