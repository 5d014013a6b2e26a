// Package models defines the public site content collections. Every
// user-visible text field is a bilingual pair; URLs and phone numbers are
// language-neutral.
package models

// Slide is one hero carousel entry.
type Slide struct {
	ID        string `json:"id"`
	ImageURL  string `json:"imageUrl"`
	CaptionBN string `json:"caption_bn"`
	CaptionEN string `json:"caption_en"`
}

func (s Slide) GetID() string { return s.ID }
func (s Slide) WithID(id string) Slide { s.ID = id; return s }

// Notice is a dated announcement.
type Notice struct {
	ID        string `json:"id"`
	TitleBN   string `json:"title_bn"`
	TitleEN   string `json:"title_en"`
	Date      string `json:"date"`
	ContentBN string `json:"content_bn"`
	ContentEN string `json:"content_en"`
}

func (n Notice) GetID() string { return n.ID }
func (n Notice) WithID(id string) Notice { n.ID = id; return n }

// Trainer is an instructor profile.
type Trainer struct {
	ID          string `json:"id"`
	NameBN      string `json:"name_bn"`
	NameEN      string `json:"name_en"`
	Phone       string `json:"phone"`
	AddressBN   string `json:"address_bn"`
	AddressEN   string `json:"address_en"`
	ExpertiseBN string `json:"expertise_bn"`
	ExpertiseEN string `json:"expertise_en"`
	ImageURL    string `json:"imageUrl"`
}

func (t Trainer) GetID() string { return t.ID }
func (t Trainer) WithID(id string) Trainer { t.ID = id; return t }

// Course is a paid course listing. Price fields are optional; an offer price
// applies until OfferEndDate.
type Course struct {
	ID                 string  `json:"id"`
	NameBN             string  `json:"name_bn"`
	NameEN             string  `json:"name_en"`
	ShortDescriptionBN string  `json:"shortDescription_bn"`
	ShortDescriptionEN string  `json:"shortDescription_en"`
	ImageURL           string  `json:"imageUrl"`
	DetailsBN          string  `json:"details_bn"`
	DetailsEN          string  `json:"details_en"`
	Price              float64 `json:"price,omitempty"`
	OfferPrice         float64 `json:"offerPrice,omitempty"`
	OfferEndDate       string  `json:"offerEndDate,omitempty"`
}

func (c Course) GetID() string { return c.ID }
func (c Course) WithID(id string) Course { c.ID = id; return c }

// GalleryItem is one photo gallery entry.
type GalleryItem struct {
	ID            string `json:"id"`
	ImageURL      string `json:"imageUrl"`
	DescriptionBN string `json:"description_bn"`
	DescriptionEN string `json:"description_en"`
}

func (g GalleryItem) GetID() string { return g.ID }
func (g GalleryItem) WithID(id string) GalleryItem { g.ID = id; return g }

// Video is an embedded YouTube video.
type Video struct {
	ID         string `json:"id"`
	TitleBN    string `json:"title_bn"`
	TitleEN    string `json:"title_en"`
	YoutubeURL string `json:"youtubeUrl"`
}

func (v Video) GetID() string { return v.ID }
func (v Video) WithID(id string) Video { v.ID = id; return v }

// TrainingItem is one entry in the training subjects strip.
type TrainingItem struct {
	ID       string `json:"id"`
	NameBN   string `json:"name_bn"`
	NameEN   string `json:"name_en"`
	ImageURL string `json:"imageUrl"`
}

func (t TrainingItem) GetID() string { return t.ID }
func (t TrainingItem) WithID(id string) TrainingItem { t.ID = id; return t }
