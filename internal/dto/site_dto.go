package dto

type SlotResponse struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Prompt      string `json:"prompt"`
	Description string `json:"description,omitempty"`
	Aspect      string `json:"aspect,omitempty"`
}

type SiteResponse struct {
	Slug          string         `json:"slug"`
	Name          string         `json:"name"`
	Category      string         `json:"category"`
	GalleryPrefix string         `json:"gallery_prefix"`
	Forms         []string       `json:"forms"`
	Slots         []SlotResponse `json:"slots,omitempty"`
}
